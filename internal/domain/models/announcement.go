package models

import "time"

// Announcement adalah pengumuman admin: untuk semua peserta, penumpang satu
// kendaraan, atau orang tertentu. Dikirim saat peserta melakukan poll berikutnya.
type Announcement struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Audience   string     `json:"audience"` // all | vehicle | users
	VehicleID  *int64     `json:"vehicle_id,omitempty"`
	Recipients []int64    `json:"recipients,omitempty"` // hanya untuk audience=users
	CreatedBy  int64      `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type AnnouncementPayload struct {
	Title      string  `json:"title" binding:"required"`
	Body       string  `json:"body" binding:"required"`
	Audience   string  `json:"audience" binding:"required"`
	VehicleID  *int64  `json:"vehicle_id"`
	Recipients []int64 `json:"recipients"`
	ExpiresAt  string  `json:"expires_at"` // "YYYY-MM-DD HH:MM:SS", kosong = tidak kedaluwarsa
}
