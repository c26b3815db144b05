package dto

// CreateAnnouncementRequest represents the request to post an announcement
type CreateAnnouncementRequest struct {
	Content string `json:"content" binding:"required" example:"Mid-term exams start on Monday"`
	From    string `json:"from" binding:"required" example:"Exam Cell"`
}

// UpdateAnnouncementRequest replaces the announcement text
type UpdateAnnouncementRequest struct {
	Content string `json:"content" binding:"required"`
}
