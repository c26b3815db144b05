package dto

// LoginRequest represents the login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ghopper"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// TokenResponse represents the issued access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"3600"`
}

// LoginResponse carries the token and the public profile of the caller
type LoginResponse struct {
	Role    string        `json:"role" example:"teacher"`
	Token   TokenResponse `json:"token"`
	Profile interface{}   `json:"profile"`
}

// AdminProfile is what an admin sees about itself after login
type AdminProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// TeacherProfile is what a teacher sees about itself after login
type TeacherProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// StudentProfile is what a student sees about itself after login
type StudentProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Semester string `json:"semester"`
}

// CreateAdminRequest represents the request to add an administrator
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAdminRequest changes an administrator; an empty password keeps the old one
type UpdateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password,omitempty"`
}
