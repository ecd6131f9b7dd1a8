package models

// Section adalah blok konten statis yang dirender frontend (info, tata tertib, kontak).
type Section struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	SortOrder int    `json:"sort_order"`
	Visible   bool   `json:"visible"`
}

type SectionPayload struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body"`
	SortOrder int    `json:"sort_order"`
	Visible   *bool  `json:"visible"`
}
