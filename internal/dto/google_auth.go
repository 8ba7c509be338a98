package dto

// GoogleUserInfo represents user information returned by Google
type GoogleUserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Verified bool   `json:"verified_email"`
}

// GoogleLoginResponse carries the authorization URL to redirect the user to
type GoogleLoginResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
