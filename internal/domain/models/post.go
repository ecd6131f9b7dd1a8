package models

import "time"

// Post adalah kiriman peserta (tempat, cerita, foto) yang menunggu moderasi admin.
type Post struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	AuthorName  string     `json:"author_name,omitempty"`
	PlaceName   string     `json:"place_name"`
	Description string     `json:"description,omitempty"`
	MediaURL    string     `json:"media_url,omitempty"`
	Tags        string     `json:"tags,omitempty"` // comma separated
	Status      string     `json:"status"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PostPayload struct {
	PlaceName   string `json:"place_name" binding:"required"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url"`
	Tags        string `json:"tags"`
}
