package dto

// SignupRequest for POST /v1/auth/signup/
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest for POST /v1/auth/token/
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
