package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
)

type AnnouncementRepository struct {
	DB *sql.DB
}

func (r AnnouncementRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create menyimpan pengumuman beserta penerima (untuk audience=users) dalam satu transaksi.
func (r AnnouncementRepository) Create(a models.Announcement) (int64, error) {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var expires any = nil
	if a.ExpiresAt != nil {
		expires = a.ExpiresAt.Format("2006-01-02 15:04:05")
	}
	var vehicleID any = nil
	if a.VehicleID != nil {
		vehicleID = *a.VehicleID
	}

	res, err := tx.Exec(`
		INSERT INTO announcements (title, body, audience, vehicle_id, created_by, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, NOW(), ?)
	`, strings.TrimSpace(a.Title), a.Body, a.Audience, vehicleID, a.CreatedBy, expires)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if a.Audience == domain.AudienceUsers {
		for _, uid := range a.Recipients {
			if uid <= 0 {
				continue
			}
			if _, err := tx.Exec(`
				INSERT INTO announcement_recipients (announcement_id, user_id)
				VALUES (?, ?)
			`, id, uid); err != nil {
				return 0, err
			}
		}
	}

	return id, tx.Commit()
}

// Update mengganti isi pengumuman; daftar penerima ditulis ulang bila audience=users.
func (r AnnouncementRepository) Update(a models.Announcement) error {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var expires any = nil
	if a.ExpiresAt != nil {
		expires = a.ExpiresAt.Format("2006-01-02 15:04:05")
	}
	var vehicleID any = nil
	if a.VehicleID != nil {
		vehicleID = *a.VehicleID
	}

	res, err := tx.Exec(`
		UPDATE announcements
		SET title = ?, body = ?, audience = ?, vehicle_id = ?, expires_at = ?
		WHERE id = ?
	`, strings.TrimSpace(a.Title), a.Body, a.Audience, vehicleID, expires, a.ID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = tx.QueryRow(`SELECT COUNT(*) FROM announcements WHERE id=?`, a.ID).Scan(&exists)
		if exists == 0 {
			return domain.NotFoundError{Resource: "pengumuman"}
		}
	}

	if _, err := tx.Exec(`DELETE FROM announcement_recipients WHERE announcement_id = ?`, a.ID); err != nil {
		return err
	}
	if a.Audience == domain.AudienceUsers {
		for _, uid := range a.Recipients {
			if uid <= 0 {
				continue
			}
			if _, err := tx.Exec(`
				INSERT INTO announcement_recipients (announcement_id, user_id)
				VALUES (?, ?)
			`, a.ID, uid); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r AnnouncementRepository) Delete(id int64) error {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM announcement_recipients WHERE announcement_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM announcement_reads WHERE announcement_id = ?`, id); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "pengumuman"}
	}

	return tx.Commit()
}

func (r AnnouncementRepository) GetByID(id int64) (models.Announcement, error) {
	db := r.db()
	var (
		a         models.Announcement
		vehicleID sql.NullInt64
		expires   sql.NullTime
	)

	err := db.QueryRow(`
		SELECT id, title, body, audience, vehicle_id, created_by, created_at, expires_at
		FROM announcements
		WHERE id = ?`, id).Scan(
		&a.ID, &a.Title, &a.Body, &a.Audience, &vehicleID, &a.CreatedBy, &a.CreatedAt, &expires,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.NotFoundError{Resource: "pengumuman"}
		}
		return a, err
	}

	if vehicleID.Valid {
		a.VehicleID = &vehicleID.Int64
	}
	if expires.Valid {
		t := expires.Time
		a.ExpiresAt = &t
	}

	if a.Audience == domain.AudienceUsers {
		rows, err := db.Query(`SELECT user_id FROM announcement_recipients WHERE announcement_id = ? ORDER BY user_id`, id)
		if err != nil {
			return a, err
		}
		defer rows.Close()
		for rows.Next() {
			var uid int64
			if err := rows.Scan(&uid); err != nil {
				return a, err
			}
			a.Recipients = append(a.Recipients, uid)
		}
		if err := rows.Err(); err != nil {
			return a, err
		}
	}

	return a, nil
}

// List mengembalikan semua pengumuman untuk panel admin, terbaru dulu.
func (r AnnouncementRepository) List() ([]models.Announcement, error) {
	db := r.db()

	rows, err := db.Query(`
		SELECT id, title, body, audience, vehicle_id, created_by, created_at, expires_at
		FROM announcements
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Announcement{}
	for rows.Next() {
		var (
			a         models.Announcement
			vehicleID sql.NullInt64
			expires   sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Audience, &vehicleID, &a.CreatedBy, &a.CreatedAt, &expires); err != nil {
			return out, err
		}
		if vehicleID.Valid {
			a.VehicleID = &vehicleID.Int64
		}
		if expires.Valid {
			t := expires.Time
			a.ExpiresAt = &t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// PollForUser mengembalikan pengumuman belum dibaca yang berlaku untuk user:
// audience all, audience vehicle milik kendaraan user, atau targeted ke user.
// Urutan tertua dulu supaya frontend menampilkan kronologis.
func (r AnnouncementRepository) PollForUser(userID int64, vehicleID *int64) ([]models.Announcement, error) {
	db := r.db()

	where := []string{
		"(a.expires_at IS NULL OR a.expires_at > NOW())",
		"NOT EXISTS (SELECT 1 FROM announcement_reads rd WHERE rd.announcement_id = a.id AND rd.user_id = ?)",
	}
	args := []any{userID}

	audience := []string{"a.audience = 'all'"}
	if vehicleID != nil && *vehicleID > 0 {
		audience = append(audience, "(a.audience = 'vehicle' AND a.vehicle_id = ?)")
		args = append(args, *vehicleID)
	}
	audience = append(audience, "(a.audience = 'users' AND EXISTS (SELECT 1 FROM announcement_recipients rc WHERE rc.announcement_id = a.id AND rc.user_id = ?))")
	args = append(args, userID)

	where = append(where, "("+strings.Join(audience, " OR ")+")")

	rows, err := db.Query(`
		SELECT a.id, a.title, a.body, a.audience, a.vehicle_id, a.created_by, a.created_at, a.expires_at
		FROM announcements a
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY a.created_at ASC, a.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Announcement{}
	for rows.Next() {
		var (
			a     models.Announcement
			vid   sql.NullInt64
			expat sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Audience, &vid, &a.CreatedBy, &a.CreatedAt, &expat); err != nil {
			return out, err
		}
		if vid.Valid {
			a.VehicleID = &vid.Int64
		}
		if expat.Valid {
			t := expat.Time
			a.ExpiresAt = &t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MarkRead mencatat pengumuman sudah dibaca; idempotent lewat ON DUPLICATE KEY.
func (r AnnouncementRepository) MarkRead(announcementID, userID int64) error {
	db := r.db()

	var exists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM announcements WHERE id = ?`, announcementID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return domain.NotFoundError{Resource: "pengumuman"}
	}

	_, err := db.Exec(`
		INSERT INTO announcement_reads (announcement_id, user_id, read_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE read_at = read_at
	`, announcementID, userID)
	return err
}

// PurgeExpired menghapus pengumuman kedaluwarsa lebih dari cutoff beserta turunannya.
func (r AnnouncementRepository) PurgeExpired(before time.Time) (int64, error) {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	cutoff := before.Format("2006-01-02 15:04:05")

	if _, err := tx.Exec(`
		DELETE rc FROM announcement_recipients rc
		JOIN announcements a ON a.id = rc.announcement_id
		WHERE a.expires_at IS NOT NULL AND a.expires_at < ?`, cutoff); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`
		DELETE rd FROM announcement_reads rd
		JOIN announcements a ON a.id = rd.announcement_id
		WHERE a.expires_at IS NOT NULL AND a.expires_at < ?`, cutoff); err != nil {
		return 0, err
	}

	res, err := tx.Exec(`DELETE FROM announcements WHERE expires_at IS NOT NULL AND expires_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	n, _ := res.RowsAffected()
	return n, tx.Commit()
}
