package models

// Mark is one student's internal mark for a paper
type Mark struct {
	StudentID string  `json:"studentId"`
	Mark      float64 `json:"mark"`
}

// Internal holds the internal exam marks of a paper; at most one per paper
type Internal struct {
	ID      string `json:"id" db:"id"`
	PaperID string `json:"paperId" db:"paper_id"`
	Marks   []Mark `json:"marks" db:"marks"`
}
