package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourapp/internal/config"
	intdb "tourapp/internal/db"
	"tourapp/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches one vehicle with occupancy count; location columns adaptif.
func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	db := r.db()
	var v models.Vehicle
	if db == nil || id <= 0 {
		return v, sql.ErrNoRows
	}

	locSelect := `NULL, NULL, NULL`
	if intdb.HasColumn(db, "vehicles", "latitude") {
		locSelect = `latitude, longitude,
			CASE WHEN location_updated_at IS NULL THEN NULL
			     ELSE DATE_FORMAT(location_updated_at, '%Y-%m-%d %H:%i:%s') END`
	}

	var (
		lat, lng  sql.NullFloat64
		locatedAt sql.NullString
	)
	err := db.QueryRow(`
		SELECT v.id, v.vehicle_code, v.plate_number,
		       COALESCE(v.capacity,0),
		       COALESCE(v.driver_name,''),
		       COALESCE(v.driver_phone,''),
		       COALESCE(v.leader_name,''),
		       COALESCE(v.notes,''),
		       (SELECT COUNT(*) FROM users u WHERE u.vehicle_id = v.id),
		       `+locSelect+`
		FROM vehicles v
		WHERE v.id = ?`, id).Scan(
		&v.ID,
		&v.VehicleCode,
		&v.PlateNumber,
		&v.Capacity,
		&v.DriverName,
		&v.DriverPhone,
		&v.LeaderName,
		&v.Notes,
		&v.Occupied,
		&lat,
		&lng,
		&locatedAt,
	)
	if err != nil {
		return v, err
	}

	if lat.Valid {
		v.Latitude = &lat.Float64
	}
	if lng.Valid {
		v.Longitude = &lng.Float64
	}
	if locatedAt.Valid {
		v.LocatedAt = locatedAt.String
	}
	return v, nil
}

// Occupant adalah baris ringkas peserta untuk daftar penumpang & manifest.
type Occupant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (r VehicleRepository) ListOccupants(vehicleID int64) ([]Occupant, error) {
	db := r.db()
	if db == nil {
		return []Occupant{}, nil
	}

	rows, err := db.Query(`
		SELECT id, name, COALESCE(phone,'')
		FROM users
		WHERE vehicle_id = ?
		ORDER BY name ASC`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Occupant{}
	for rows.Next() {
		var o Occupant
		if err := rows.Scan(&o.ID, &o.Name, &o.Phone); err != nil {
			return out, err
		}
		o.Name = strings.TrimSpace(o.Name)
		out = append(out, o)
	}
	return out, rows.Err()
}
