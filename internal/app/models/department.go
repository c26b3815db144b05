package models

// Department is an academic department. Creating one also creates its semesters.
type Department struct {
	ID            string `json:"id" db:"id" example:"6f1c2a8e-3b7d-4f57-9a55-0d8c1c3e2b10"`
	Name          string `json:"name" db:"name" example:"Computer Science"`
	SemesterCount int    `json:"semesterCount" db:"semester_count" example:"6"`
}

// Semester belongs to exactly one department and is numbered 1..SemesterCount
type Semester struct {
	ID           string `json:"id" db:"id"`
	Number       int    `json:"number" db:"number" example:"3"`
	DepartmentID string `json:"departmentId" db:"department_id"`
}
