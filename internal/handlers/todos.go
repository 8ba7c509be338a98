package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/dto"
	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/utils"
)

// TodosHandler manages todo-related endpoints
type TodosHandler struct {
	store  store.Store
	config *config.Config
}

// NewTodosHandler creates a new TodosHandler
func NewTodosHandler(st store.Store, cfg *config.Config) *TodosHandler {
	return &TodosHandler{store: st, config: cfg}
}

// Todos dispatches by HTTP method and path for the /api/todos subtree
func (h *TodosHandler) Todos(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/todos"), "/")

	switch {
	case rest == "":
		switch r.Method {
		case http.MethodPost:
			h.CreateTodo(w, r, userID)
		case http.MethodGet:
			h.ListActive(w, r, userID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case strings.HasPrefix(rest, "complete/"):
		id, ok := parseID(w, strings.TrimPrefix(rest, "complete/"))
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.GetCompleted(w, r, userID, id)
		case http.MethodPut:
			h.MarkComplete(w, r, userID, id)
		case http.MethodDelete:
			h.DeleteTodo(w, r, userID, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		id, ok := parseID(w, rest)
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.GetTodo(w, r, userID, id)
		case http.MethodPut:
			h.UpdateTodo(w, r, userID, id)
		case http.MethodDelete:
			h.DeleteTodo(w, r, userID, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// CreateTodo handles POST /api/todos
// @Summary Create a new todo
// @Tags todos
// @Accept json
// @Produce json
// @Param payload body dto.CreateTodoRequest true "Todo payload"
// @Success 201 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/todos [post]
func (h *TodosHandler) CreateTodo(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req dto.CreateTodoRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Title and description are required")
		return
	}

	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
	}
	if err := h.store.Todos().Create(r.Context(), todo); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, todoResponse(*todo))
}

// ListActive handles GET /api/todos
// @Summary List the caller's active todos
// @Tags todos
// @Produce json
// @Success 200 {array} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/todos [get]
func (h *TodosHandler) ListActive(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	todos, err := h.store.Todos().ListActive(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, todoResponses(todos))
}

// GetTodo handles GET /api/todos/{id}
// @Summary Get a single todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo id"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id} [get]
func (h *TodosHandler) GetTodo(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) {
	todo, err := h.store.Todos().Get(r.Context(), id, userID)
	if err != nil {
		writeTodoError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, todoResponse(*todo))
}

// UpdateTodo handles PUT /api/todos/{id}. The update is a full replace:
// title, description and the completion flag are all written. Completing a
// todo stamps completedOn; un-completing clears it.
// @Summary Update a todo (full replace)
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo id"
// @Param payload body dto.UpdateTodoRequest true "Todo payload"
// @Success 200 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id} [put]
func (h *TodosHandler) UpdateTodo(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) {
	var req dto.UpdateTodoRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Title and description are required")
		return
	}

	todo, err := h.store.Todos().Update(r.Context(), id, userID, req.Title, req.Description, req.IsCompleted)
	if err != nil {
		writeTodoError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, todoResponse(*todo))
}

// GetCompleted handles GET /api/todos/complete/{id}.
//
// The path id is either the caller's own user id (list all completed
// todos) or a todo id (fetch that completed todo). Lookups are always
// scoped to the caller, so passing another user's id yields 404 rather
// than that user's list.
// @Summary List completed todos or get one completed todo
// @Tags todos
// @Produce json
// @Param id path string true "Caller's user id or a todo id"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/complete/{id} [get]
func (h *TodosHandler) GetCompleted(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) {
	if id == userID {
		todos, err := h.store.Todos().ListCompleted(r.Context(), userID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, todoResponses(todos))
		return
	}

	todo, err := h.store.Todos().GetCompleted(r.Context(), id, userID)
	if err != nil {
		writeTodoError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, todoResponse(*todo))
}

// MarkComplete handles PUT /api/todos/complete/{id}
// @Summary Mark a todo as completed
// @Tags todos
// @Produce json
// @Param id path string true "Todo id"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/complete/{id} [put]
func (h *TodosHandler) MarkComplete(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) {
	todo, err := h.store.Todos().MarkComplete(r.Context(), id, userID)
	if err != nil {
		writeTodoError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, todoResponse(*todo))
}

// DeleteTodo handles DELETE /api/todos/{id} and
// DELETE /api/todos/complete/{id}; both hard-delete and return the
// deleted record.
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Param id path string true "Todo id"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id} [delete]
func (h *TodosHandler) DeleteTodo(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) {
	todo, err := h.store.Todos().Delete(r.Context(), id, userID)
	if err != nil {
		writeTodoError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, todoResponse(*todo))
}

func parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeTodoError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Todo not found")
		return
	}
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
}

func todoResponse(t models.Todo) dto.TodoResponse {
	var completedOn *string
	if t.CompletedOn != nil {
		s := t.CompletedOn.Format(time.RFC3339)
		completedOn = &s
	}
	return dto.TodoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CompletedOn: completedOn,
		UserID:      t.UserID.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func todoResponses(todos []models.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoResponse(t))
	}
	return out
}
