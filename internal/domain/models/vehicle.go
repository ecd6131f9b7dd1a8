package models

type Vehicle struct {
	ID          int64    `json:"id"`
	VehicleCode string   `json:"vehicleCode"`
	PlateNumber string   `json:"plateNumber"`
	Capacity    int      `json:"capacity"`
	DriverName  string   `json:"driverName,omitempty"`
	DriverPhone string   `json:"driverPhone,omitempty"`
	LeaderName  string   `json:"leaderName,omitempty"` // ketua rombongan per kendaraan
	Notes       string   `json:"notes,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	LocatedAt   string   `json:"locatedAt,omitempty"` // "YYYY-MM-DD HH:MM:SS" update lokasi terakhir
	Occupied    int      `json:"occupied"`            // jumlah peserta yang sudah ditempatkan
}

type VehiclePayload struct {
	VehicleCode string `json:"vehicleCode" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Capacity    int    `json:"capacity"`
	DriverName  string `json:"driverName"`
	DriverPhone string `json:"driverPhone"`
	LeaderName  string `json:"leaderName"`
	Notes       string `json:"notes"`
}

// Pointer supaya koordinat 0 (khatulistiwa / meridian utama) tetap valid.
type VehicleLocationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
