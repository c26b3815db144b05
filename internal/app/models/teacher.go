package models

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name" example:"Grace Hopper"`
	Email        string `json:"email" db:"email" example:"grace@college.edu"`
	DepartmentID string `json:"departmentId" db:"department_id"`
	Username     string `json:"username" db:"username" example:"ghopper"`
	PasswordHash string `json:"-" db:"password_hash"` // never serialised
}
