package models

import "time"

// Journal adalah catatan harian pribadi peserta, hanya terlihat oleh pemilik (dan admin).
type Journal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TripDate  string    `json:"trip_date"` // YYYY-MM-DD
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JournalPayload struct {
	TripDate string `json:"trip_date" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Mood     string `json:"mood"`
}
