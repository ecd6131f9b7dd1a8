package models

// CheckinSession adalah satu sesi absensi (mis. "Kumpul pagi hari ke-2").
type CheckinSession struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SessionDate string `json:"session_date"` // YYYY-MM-DD
	CreatedBy   int64  `json:"created_by"`
}

// Checkin adalah catatan kehadiran satu peserta pada satu sesi.
type Checkin struct {
	ID           int64  `json:"id"`
	SessionID    int64  `json:"session_id"`
	UserID       int64  `json:"user_id"`
	TravelerName string `json:"traveler_name,omitempty"`
	VehicleID    *int64 `json:"vehicle_id"`
	Present      bool   `json:"present"`
	CheckedBy    int64  `json:"checked_by"`
	CheckedAt    string `json:"checked_at,omitempty"`
}

type CheckinPayload struct {
	SessionID int64  `json:"session_id" binding:"required"`
	UserID    int64  `json:"user_id" binding:"required"`
	VehicleID *int64 `json:"vehicle_id"`
	Present   *bool  `json:"present" binding:"required"`
}

// CheckinRecap merangkum kehadiran per kendaraan untuk satu sesi.
type CheckinRecap struct {
	VehicleID   *int64 `json:"vehicle_id"`
	VehicleCode string `json:"vehicle_code"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	Total       int    `json:"total"`
}
