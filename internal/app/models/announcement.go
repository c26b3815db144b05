package models

import "time"

// Announcement is a free-text notice shown to everyone
type Announcement struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	From      string    `json:"from" db:"author"`
	Datetime  string    `json:"datetime" db:"datetime" example:"07/03/2024 2:05 PM"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
