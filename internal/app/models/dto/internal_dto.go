package dto

import "github.com/yigit/campuslink/internal/app/models"

// InternalMarksRequest is the body of internal create and replace
type InternalMarksRequest struct {
	Marks []models.Mark `json:"marks" binding:"required,dive"`
}

// MarkView is one resolved mark; Student is null when the student is gone
type MarkView struct {
	StudentID string        `json:"studentId"`
	Student   *StudentBrief `json:"student"`
	Mark      float64       `json:"mark"`
}

// InternalView is an internal record with paper and students resolved
type InternalView struct {
	ID    string     `json:"id"`
	Paper *PaperRef  `json:"paper"`
	Marks []MarkView `json:"marks"`
}
