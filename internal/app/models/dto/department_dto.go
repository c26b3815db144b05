package dto

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	Name          string `json:"name" binding:"required" example:"Computer Science"`
	SemesterCount int    `json:"semesterCount" binding:"required,min=1,max=20" example:"6"`
}

// UpdateDepartmentRequest renames a department
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Computer Engineering"`
}

// DepartmentRef is the embedded form of a department in other views
type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SemesterRef is the embedded form of a semester in other views
type SemesterRef struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}

// CascadeSummary lists what a department delete removed
type CascadeSummary struct {
	DepartmentID string   `json:"departmentId"`
	Name         string   `json:"name"`
	SemesterIDs  []string `json:"semesterIds"`
	TeacherIDs   []string `json:"teacherIds"`
	StudentIDs   []string `json:"studentIds"`
}
