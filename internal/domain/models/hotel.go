package models

type Hotel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	CheckinDate  string `json:"checkin_date,omitempty"`  // YYYY-MM-DD
	CheckoutDate string `json:"checkout_date,omitempty"` // YYYY-MM-DD
	Notes        string `json:"notes,omitempty"`
}

type HotelPayload struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	City         string `json:"city"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Notes        string `json:"notes"`
}

type Room struct {
	ID         int64  `json:"id"`
	HotelID    int64  `json:"hotel_id"`
	RoomNumber string `json:"room_number"`
	Capacity   int    `json:"capacity"`
}

type RoomPayload struct {
	RoomNumber string `json:"room_number" binding:"required"`
	Capacity   int    `json:"capacity"`
}

// Allotment adalah penempatan peserta per tanggal ke kendaraan dan/atau kamar.
type Allotment struct {
	ID           int64  `json:"id"`
	AllotDate    string `json:"allot_date"` // YYYY-MM-DD
	UserID       int64  `json:"user_id"`
	TravelerName string `json:"traveler_name,omitempty"`
	VehicleID    *int64 `json:"vehicle_id"`
	RoomID       *int64 `json:"room_id"`
	Notes        string `json:"notes,omitempty"`
}

type AllotmentPayload struct {
	AllotDate string `json:"allot_date" binding:"required"`
	UserID    int64  `json:"user_id" binding:"required"`
	VehicleID *int64 `json:"vehicle_id"`
	RoomID    *int64 `json:"room_id"`
	Notes     string `json:"notes"`
}
