package models

// ItineraryItem adalah satu agenda acara dalam jadwal perjalanan.
type ItineraryItem struct {
	ID          int64  `json:"id"`
	TripDate    string `json:"trip_date"` // YYYY-MM-DD
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

type ItineraryPayload struct {
	TripDate    string `json:"trip_date" binding:"required"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Title       string `json:"title" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}
