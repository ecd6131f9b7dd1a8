package repositories

import (
	"database/sql"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain/models"
)

type HotelRepository struct {
	DB *sql.DB
}

func (r HotelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r HotelRepository) GetByID(id int64) (models.Hotel, error) {
	db := r.db()
	var (
		h        models.Hotel
		checkin  sql.NullString
		checkout sql.NullString
	)

	err := db.QueryRow(`
		SELECT id, name,
		       COALESCE(address,''),
		       COALESCE(city,''),
		       CASE WHEN checkin_date IS NULL THEN NULL ELSE DATE_FORMAT(checkin_date, '%Y-%m-%d') END,
		       CASE WHEN checkout_date IS NULL THEN NULL ELSE DATE_FORMAT(checkout_date, '%Y-%m-%d') END,
		       COALESCE(notes,'')
		FROM hotels
		WHERE id = ?`, id).Scan(
		&h.ID, &h.Name, &h.Address, &h.City, &checkin, &checkout, &h.Notes,
	)
	if err != nil {
		return h, err
	}
	if checkin.Valid {
		h.CheckinDate = checkin.String
	}
	if checkout.Valid {
		h.CheckoutDate = checkout.String
	}
	return h, nil
}

// RoomingEntry adalah satu baris rooming list: kamar + penghuni per tanggal penempatan.
type RoomingEntry struct {
	RoomNumber   string
	Capacity     int
	TravelerName string
	AllotDate    string
}

// RoomingList mengambil penghuni kamar hotel dari allotments, urut kamar lalu nama.
func (r HotelRepository) RoomingList(hotelID int64) ([]RoomingEntry, error) {
	db := r.db()

	rows, err := db.Query(`
		SELECT rm.room_number, COALESCE(rm.capacity,0), COALESCE(u.name,''),
		       DATE_FORMAT(al.allot_date, '%Y-%m-%d')
		FROM rooms rm
		JOIN allotments al ON al.room_id = rm.id
		LEFT JOIN users u ON u.id = al.user_id
		WHERE rm.hotel_id = ?
		ORDER BY rm.room_number ASC, al.allot_date ASC, u.name ASC`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RoomingEntry{}
	for rows.Next() {
		var e RoomingEntry
		if err := rows.Scan(&e.RoomNumber, &e.Capacity, &e.TravelerName, &e.AllotDate); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
