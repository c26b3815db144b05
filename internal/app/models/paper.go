package models

// Paper is a course taught in one semester of one department by one teacher
type Paper struct {
	ID           string `json:"id" db:"id"`
	Code         string `json:"code" db:"code" example:"CS301"`
	Title        string `json:"title" db:"title" example:"Operating Systems"`
	SemesterID   string `json:"semesterId" db:"semester_id"`
	DepartmentID string `json:"departmentId" db:"department_id"`
	TeacherID    string `json:"teacherId" db:"teacher_id"`
}
