package models

// Student defines the student model based on the 'students' table.
// SemesterID must reference a semester of DepartmentID.
type Student struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name" example:"Alan Turing"`
	AdmissionNo  int64  `json:"admissionNo" db:"admission_no" example:"1042"`
	RollNo       int64  `json:"rollNo" db:"roll_no" example:"17"`
	Email        string `json:"email" db:"email"`
	SemesterID   string `json:"semesterId" db:"semester_id"`
	DepartmentID string `json:"departmentId" db:"department_id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}
