package dto

// CreatePaperRequest represents the request to create a paper
type CreatePaperRequest struct {
	Code         string `json:"code" binding:"required" example:"CS301"`
	Title        string `json:"title" binding:"required" example:"Operating Systems"`
	Semnum       int    `json:"semnum" binding:"required,min=1" example:"3"`
	DepartmentID string `json:"departmentId" binding:"required,uuid"`
	TeacherID    string `json:"teacherId" binding:"required,uuid"`
}

// UpdatePaperRequest carries the fields to change; nil fields are kept
type UpdatePaperRequest struct {
	Code         *string `json:"code,omitempty"`
	Title        *string `json:"title,omitempty"`
	SemesterID   *string `json:"semesterId,omitempty" binding:"omitempty,uuid"`
	DepartmentID *string `json:"departmentId,omitempty" binding:"omitempty,uuid"`
	TeacherID    *string `json:"teacherId,omitempty" binding:"omitempty,uuid"`
}

// PaperRef is the embedded form of a paper in other views
type PaperRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// PaperView is a paper with semester, department and teacher resolved.
// A reference whose record no longer exists is null.
type PaperView struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	Title      string         `json:"title"`
	Semester   *SemesterRef   `json:"semester"`
	Department *DepartmentRef `json:"department"`
	Teacher    *TeacherRef    `json:"teacher"`
}
