package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
)

type CheckinRepository struct {
	DB *sql.DB
}

func (r CheckinRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// UpsertCheckin menulis satu catatan kehadiran per (session, user).
// Kendaraan diambil dari penempatan user saat ini bila payload tidak mengisinya.
func (r CheckinRepository) UpsertCheckin(p models.CheckinPayload, checkedBy int64) error {
	db := r.db()

	var sessionExists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM checkin_sessions WHERE id = ?`, p.SessionID).Scan(&sessionExists); err != nil {
		return err
	}
	if sessionExists == 0 {
		return domain.NotFoundError{Resource: "sesi absensi"}
	}

	vehicleID := p.VehicleID
	if vehicleID == nil {
		var vid sql.NullInt64
		err := db.QueryRow(`SELECT vehicle_id FROM users WHERE id = ?`, p.UserID).Scan(&vid)
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.NotFoundError{Resource: "peserta"}
			}
			return err
		}
		if vid.Valid {
			vehicleID = &vid.Int64
		}
	}

	present := 0
	if p.Present != nil && *p.Present {
		present = 1
	}

	var vehicleVal any = nil
	if vehicleID != nil {
		vehicleVal = *vehicleID
	}

	_, err := db.Exec(`
		INSERT INTO checkins (session_id, user_id, vehicle_id, present, checked_by, checked_at)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			vehicle_id = VALUES(vehicle_id),
			present = VALUES(present),
			checked_by = VALUES(checked_by),
			checked_at = NOW()
	`, p.SessionID, p.UserID, vehicleVal, present, checkedBy)
	return err
}

type CheckinFilter struct {
	SessionID int64
	VehicleID int64
}

func (r CheckinRepository) ListCheckins(f CheckinFilter) ([]models.Checkin, error) {
	db := r.db()

	where := []string{"1=1"}
	args := []any{}
	if f.SessionID > 0 {
		where = append(where, "c.session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.VehicleID > 0 {
		where = append(where, "c.vehicle_id = ?")
		args = append(args, f.VehicleID)
	}

	rows, err := db.Query(`
		SELECT c.id, c.session_id, c.user_id, COALESCE(u.name,''), c.vehicle_id, c.present, c.checked_by,
		       DATE_FORMAT(c.checked_at, '%Y-%m-%d %H:%i:%s')
		FROM checkins c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY u.name ASC, c.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Checkin{}
	for rows.Next() {
		var (
			rec     models.Checkin
			vid     sql.NullInt64
			present int
			checked sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.UserID, &rec.TravelerName, &vid, &present, &rec.CheckedBy, &checked); err != nil {
			return out, err
		}
		if vid.Valid {
			rec.VehicleID = &vid.Int64
		}
		rec.Present = present == 1
		if checked.Valid {
			rec.CheckedAt = checked.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Recap menghitung hadir/absen per kendaraan untuk satu sesi.
// Total diambil dari penempatan kendaraan, bukan dari jumlah catatan,
// supaya peserta yang belum diabsen tetap masuk hitungan absen.
func (r CheckinRepository) Recap(sessionID int64) ([]models.CheckinRecap, error) {
	db := r.db()

	rows, err := db.Query(`
		SELECT v.id, v.vehicle_code,
		       COUNT(u.id) AS total,
		       COALESCE(SUM(CASE WHEN c.present = 1 THEN 1 ELSE 0 END), 0) AS present
		FROM vehicles v
		LEFT JOIN users u ON u.vehicle_id = v.id
		LEFT JOIN checkins c ON c.session_id = ? AND c.user_id = u.id
		GROUP BY v.id, v.vehicle_code
		ORDER BY v.vehicle_code ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CheckinRecap{}
	for rows.Next() {
		var (
			rec models.CheckinRecap
			vid int64
		)
		if err := rows.Scan(&vid, &rec.VehicleCode, &rec.Total, &rec.Present); err != nil {
			return out, err
		}
		rec.VehicleID = &vid
		rec.Absent = rec.Total - rec.Present
		out = append(out, rec)
	}
	return out, rows.Err()
}
