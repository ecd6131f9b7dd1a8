package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
	"tourapp/internal/utils"

	"github.com/gin-gonic/gin"
)

const travelerSelect = `
	SELECT
		id,
		name,
		username,
		email,
		COALESCE(phone,'') AS phone,
		password_hash,
		role,
		status,
		COALESCE(gender,'') AS gender,
		CASE
			WHEN birth_date IS NULL THEN NULL
			ELSE DATE_FORMAT(birth_date, '%Y-%m-%d')
		END AS birth_date,
		COALESCE(address,'') AS address,
		COALESCE(photo_url,'') AS photo_url,
		vehicle_id,
		created_at,
		updated_at
	FROM users
`

func scanTravelerRow(scan func(dest ...any) error) (models.Traveler, error) {
	var (
		t         models.Traveler
		birth     sql.NullString
		vehicleID sql.NullInt64
	)
	err := scan(
		&t.ID,
		&t.Name,
		&t.Username,
		&t.Email,
		&t.Phone,
		&t.PasswordHash,
		&t.Role,
		&t.Status,
		&t.Gender,
		&birth,
		&t.Address,
		&t.PhotoURL,
		&vehicleID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	if birth.Valid {
		t.BirthDate = birth.String
	}
	if vehicleID.Valid {
		t.VehicleID = &vehicleID.Int64
	}
	return t, nil
}

func scanTravelerByID(id int64) (models.Traveler, error) {
	row := intconfig.DB.QueryRow(travelerSelect+` WHERE id = ?`, id)
	return scanTravelerRow(row.Scan)
}

// GET /api/travelers?q=&vehicle_id=&page=&limit=  (admin)
func GetTravelers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	vehicleIDStr := strings.TrimSpace(c.Query("vehicle_id"))

	where := []string{"1=1"}
	args := []any{}

	if q != "" {
		where = append(where, "(name LIKE ? OR username LIKE ? OR email LIKE ? OR phone LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like, like)
	}
	if vehicleIDStr != "" {
		if vehicleIDStr == "none" {
			where = append(where, "vehicle_id IS NULL")
		} else if vid, err := strconv.ParseInt(vehicleIDStr, 10, 64); err == nil && vid > 0 {
			where = append(where, "vehicle_id = ?")
			args = append(args, vid)
		}
	}

	query := travelerSelect + " WHERE " + strings.Join(where, " AND ") + " ORDER BY name ASC"
	if page, limit, ok := pageLimit(c); ok {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data peserta: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.PublicTraveler{}
	for rows.Next() {
		t, err := scanTravelerRow(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan data peserta: " + err.Error()})
			return
		}
		list = append(list, t.ToPublic())
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/travelers/:id  (admin atau diri sendiri)
func GetTravelerByID(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	if !rc.IsAdmin() && rc.UserID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "tidak boleh melihat profil peserta lain"})
		return
	}

	t, err := scanTravelerByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "peserta tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query peserta: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, t.ToPublic())
}

type travelerUpdateRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD, kosong => NULL
	Address   string `json:"address"`
	PhotoURL  string `json:"photo_url"`
	Status    string `json:"status"` // hanya admin
	Role      string `json:"role"`   // hanya admin
}

// PUT /api/travelers/:id  (admin atau diri sendiri; self tidak boleh ubah role/status)
func UpdateTraveler(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	if !rc.IsAdmin() && rc.UserID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "tidak boleh mengubah profil peserta lain"})
		return
	}

	var req travelerUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name wajib diisi"})
		return
	}

	var birthDate any = nil
	if strings.TrimSpace(req.BirthDate) != "" {
		if !validDate(req.BirthDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "format birth_date harus YYYY-MM-DD"})
			return
		}
		birthDate = strings.TrimSpace(req.BirthDate)
	}

	set := []string{"name=?", "phone=?", "gender=?", "birth_date=?", "address=?", "photo_url=?", "updated_at=NOW()"}
	args := []any{
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Gender),
		birthDate,
		strings.TrimSpace(req.Address),
		strings.TrimSpace(req.PhotoURL),
	}

	if rc.IsAdmin() {
		if s := strings.TrimSpace(req.Status); s != "" {
			set = append(set, "status=?")
			args = append(args, s)
		}
		if r := strings.ToLower(strings.TrimSpace(req.Role)); r != "" {
			if r != domain.RoleAdmin && r != domain.RoleUser {
				c.JSON(http.StatusBadRequest, gin.H{"error": "role harus admin atau user"})
				return
			}
			set = append(set, "role=?")
			args = append(args, r)
		}
	}

	args = append(args, id)
	res, err := intconfig.DB.Exec(`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update peserta: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		// bisa juga no-op update; pastikan row memang ada
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "peserta tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "profil peserta berhasil diupdate"})
}

// DELETE /api/travelers/:id  (admin)
func DeleteTraveler(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	if rc.UserID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tidak bisa menghapus akun sendiri"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus peserta: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "peserta tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "peserta berhasil dihapus"})
}

type assignVehicleRequest struct {
	VehicleID *int64 `json:"vehicle_id"` // null = lepas dari kendaraan
}

// PUT /api/travelers/:id/vehicle  (admin)
func AssignTravelerVehicle(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var req assignVehicleRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.VehicleID != nil {
		var capacity, occupied int
		err := intconfig.DB.QueryRow(`
			SELECT v.capacity,
			       (SELECT COUNT(*) FROM users u WHERE u.vehicle_id = v.id AND u.id <> ?)
			FROM vehicles v
			WHERE v.id = ?
		`, id, *req.VehicleID).Scan(&capacity, &occupied)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek kendaraan: " + err.Error()})
			return
		}
		if capacity > 0 && occupied >= capacity {
			c.JSON(http.StatusConflict, gin.H{"error": "kendaraan sudah penuh"})
			return
		}
	}

	var vehicleVal any = nil
	if req.VehicleID != nil {
		vehicleVal = *req.VehicleID
	}

	res, err := intconfig.DB.Exec(`UPDATE users SET vehicle_id = ?, updated_at = NOW() WHERE id = ?`, vehicleVal, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menempatkan peserta: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "peserta tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "penempatan kendaraan berhasil disimpan"})
}

// validDate menerima format YYYY-MM-DD.
func validDate(s string) bool {
	_, err := utils.ParseDate(s)
	return err == nil
}
