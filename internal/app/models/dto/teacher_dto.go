package dto

// CreateTeacherRequest represents the request to register a teacher
type CreateTeacherRequest struct {
	Name         string `json:"name" binding:"required" example:"Grace Hopper"`
	Email        string `json:"email" binding:"required,email" example:"grace@college.edu"`
	DepartmentID string `json:"departmentId" binding:"required,uuid" example:"6f1c2a8e-3b7d-4f57-9a55-0d8c1c3e2b10"`
	Username     string `json:"username" binding:"required" example:"ghopper"`
	Password     string `json:"password" binding:"required" example:"secret"`
}

// UpdateTeacherRequest carries the fields to change; nil fields are kept
type UpdateTeacherRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	DepartmentID *string `json:"departmentId,omitempty" binding:"omitempty,uuid"`
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty"`
}

// TeacherRef is the embedded form of a teacher in other views
type TeacherRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeacherView is a teacher with its department resolved
type TeacherView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Username   string         `json:"username"`
	Department *DepartmentRef `json:"department"`
}
