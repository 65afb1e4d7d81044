package dto

type RegisterRequest struct {
	Email        string  `json:"email"    validate:"required,email"`
	Name         string  `json:"name"     validate:"required,min=2,max=120"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	BusinessName *string `json:"business_name"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	BusinessName *string `json:"business_name"`
}
