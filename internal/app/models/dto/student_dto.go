package dto

// CreateStudentRequest represents the request to enrol a student. The semester is
// given by its number within the department.
type CreateStudentRequest struct {
	Name         string `json:"name" binding:"required" example:"Alan Turing"`
	AdmissionNo  int64  `json:"admissionNo" binding:"required" example:"1042"`
	RollNo       int64  `json:"rollNo" binding:"required" example:"17"`
	Semnum       int    `json:"semnum" binding:"required,min=1" example:"2"`
	DepartmentID string `json:"departmentId" binding:"required,uuid"`
	Email        string `json:"email" binding:"required,email" example:"alan@college.edu"`
	Username     string `json:"username" binding:"required" example:"aturing"`
	Password     string `json:"password" binding:"required"`
}

// UpdateStudentRequest carries the fields to change; nil fields are kept.
// SemesterID wins over Semnum when both are given.
type UpdateStudentRequest struct {
	Name         *string `json:"name,omitempty"`
	AdmissionNo  *int64  `json:"admissionNo,omitempty"`
	RollNo       *int64  `json:"rollNo,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	SemesterID   *string `json:"semesterId,omitempty" binding:"omitempty,uuid"`
	Semnum       *int    `json:"semnum,omitempty" binding:"omitempty,min=1"`
	DepartmentID *string `json:"departmentId,omitempty" binding:"omitempty,uuid"`
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty"`
}

// StudentView is a student with semester and department resolved
type StudentView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	AdmissionNo int64          `json:"admissionNo"`
	RollNo      int64          `json:"rollNo"`
	Email       string         `json:"email"`
	Username    string         `json:"username"`
	Semester    *SemesterRef   `json:"semester"`
	Department  *DepartmentRef `json:"department"`
}

// StudentBrief is the short form used in mark sheets and paper rosters
type StudentBrief struct {
	ID     string `json:"id"`
	RollNo int64  `json:"rollNo"`
	Name   string `json:"name"`
}
