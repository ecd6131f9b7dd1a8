package models

import "time"

// Traveler adalah peserta rombongan; akun login sekaligus profil.
type Traveler struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // JANGAN dikirim ke frontend
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Gender       string    `json:"gender,omitempty"`
	BirthDate    string    `json:"birth_date,omitempty"` // YYYY-MM-DD atau "" jika null
	Address      string    `json:"address,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	VehicleID    *int64    `json:"vehicle_id"` // nullable: belum dapat kendaraan
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PublicTraveler struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Address   string `json:"address,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	VehicleID *int64 `json:"vehicle_id"`
}

func (t *Traveler) ToPublic() PublicTraveler {
	return PublicTraveler{
		ID:        t.ID,
		Name:      t.Name,
		Username:  t.Username,
		Email:     t.Email,
		Phone:     t.Phone,
		Role:      t.Role,
		Status:    t.Status,
		Gender:    t.Gender,
		BirthDate: t.BirthDate,
		Address:   t.Address,
		PhotoURL:  t.PhotoURL,
		VehicleID: t.VehicleID,
	}
}
