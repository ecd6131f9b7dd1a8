package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "tourapp/internal/config"
	intdb "tourapp/internal/db"
	"tourapp/internal/domain/models"
	"tourapp/internal/repositories"
	"tourapp/internal/services"
	"tourapp/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?q=BUS&page=1&limit=50
func GetVehicles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	db := intconfig.DB
	hasLocation := intdb.HasColumn(db, "vehicles", "latitude")

	locSelect := `NULL, NULL, NULL`
	if hasLocation {
		locSelect = `
			latitude,
			longitude,
			CASE
				WHEN location_updated_at IS NULL THEN NULL
				ELSE DATE_FORMAT(location_updated_at, '%Y-%m-%d %H:%i:%s')
			END`
	}

	baseSelect := `
		SELECT
			v.id,
			v.vehicle_code,
			v.plate_number,
			COALESCE(v.capacity,0) AS capacity,
			COALESCE(v.driver_name,'') AS driver_name,
			COALESCE(v.driver_phone,'') AS driver_phone,
			COALESCE(v.leader_name,'') AS leader_name,
			COALESCE(v.notes,'') AS notes,
			(SELECT COUNT(*) FROM users u WHERE u.vehicle_id = v.id) AS occupied,
			` + locSelect + `
		FROM vehicles v
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (v.vehicle_code LIKE ? OR v.plate_number LIKE ? OR v.driver_name LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	query := baseSelect + where + " ORDER BY v.vehicle_code ASC"
	if page, limit, ok := pageLimit(c); ok {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data kendaraan: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicleRow(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan data kendaraan: " + err.Error()})
			return
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

func scanVehicleRow(scan func(dest ...any) error) (models.Vehicle, error) {
	var (
		v         models.Vehicle
		lat, lng  sql.NullFloat64
		locatedAt sql.NullString
	)
	err := scan(
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

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	v, err := repositories.VehicleRepository{}.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query kendaraan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, v)
}

// POST /api/vehicles  (admin)
func CreateVehicle(c *gin.Context) {
	var payload models.VehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	vehicleCode := strings.TrimSpace(payload.VehicleCode)
	plateNumber := strings.TrimSpace(payload.PlateNumber)
	if vehicleCode == "" || plateNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleCode dan plateNumber wajib diisi"})
		return
	}
	if payload.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity tidak boleh negatif"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO vehicles (vehicle_code, plate_number, capacity, driver_name, driver_phone, leader_name, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, vehicleCode, plateNumber, payload.Capacity,
		intdb.NullIfEmpty(strings.TrimSpace(payload.DriverName)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.DriverPhone)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.LeaderName)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Notes)))
	if err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Kode atau plat kendaraan sudah terdaftar (duplikat)."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menambah kendaraan: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "kendaraan berhasil ditambahkan", "id": id})
}

// PUT /api/vehicles/:id  (admin)
func UpdateVehicle(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.VehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	vehicleCode := strings.TrimSpace(payload.VehicleCode)
	plateNumber := strings.TrimSpace(payload.PlateNumber)
	if vehicleCode == "" || plateNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleCode dan plateNumber wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE vehicles
		SET vehicle_code = ?, plate_number = ?, capacity = ?, driver_name = ?, driver_phone = ?, leader_name = ?, notes = ?
		WHERE id = ?
	`, vehicleCode, plateNumber, payload.Capacity,
		intdb.NullIfEmpty(strings.TrimSpace(payload.DriverName)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.DriverPhone)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.LeaderName)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Notes)),
		id)
	if err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Kode atau plat kendaraan sudah terdaftar (duplikat)."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update kendaraan: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil diupdate"})
}

// DELETE /api/vehicles/:id  (admin)
func DeleteVehicle(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	// lepas dulu peserta yang masih menempel supaya FK tidak menggantung
	if _, err := intconfig.DB.Exec(`UPDATE users SET vehicle_id = NULL WHERE vehicle_id = ?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal melepas penumpang kendaraan: " + err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus kendaraan: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil dihapus"})
}

// GET /api/vehicles/:id/occupants
func GetVehicleOccupants(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	occupants, err := repositories.VehicleRepository{}.ListOccupants(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil penumpang: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, occupants)
}

// PUT /api/vehicles/:id/location — update lokasi live oleh driver/ketua rombongan.
// Kolom lokasi dibuat on-demand pada deployment lama yang belum punya.
func UpdateVehicleLocation(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.VehicleLocationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude dan longitude wajib diisi"})
		return
	}
	lat, lng := *payload.Latitude, *payload.Longitude
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "koordinat di luar jangkauan"})
		return
	}

	db := intconfig.DB

	// hanya admin atau penumpang kendaraan ini (driver/ketua rombongan login
	// sebagai peserta yang ditempatkan di kendaraannya)
	rc := reqCtx(c)
	if !rc.IsAdmin() {
		var assigned sql.NullInt64
		if err := db.QueryRow(`SELECT vehicle_id FROM users WHERE id = ?`, rc.UserID).Scan(&assigned); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek penempatan peserta: " + err.Error()})
			return
		}
		if !assigned.Valid || assigned.Int64 != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "tidak boleh update lokasi kendaraan lain"})
			return
		}
	}
	if !intdb.EnsureColumn(db, "vehicles", "latitude", "DOUBLE NULL") ||
		!intdb.EnsureColumn(db, "vehicles", "longitude", "DOUBLE NULL") ||
		!intdb.EnsureColumn(db, "vehicles", "location_updated_at", "DATETIME NULL") {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schema vehicles belum siap untuk lokasi"})
		return
	}

	res, err := db.Exec(`
		UPDATE vehicles
		SET latitude = ?, longitude = ?, location_updated_at = NOW()
		WHERE id = ?
	`, lat, lng, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update lokasi: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = db.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
			return
		}
	}

	utils.LogEvent(requestID(c), "vehicle", "update_location", "vehicle_id="+itoa64(id))
	c.JSON(http.StatusOK, gin.H{"message": "lokasi kendaraan berhasil diupdate"})
}

// GET /api/vehicles/:id/manifest — PDF manifest penumpang per kendaraan.
func GetVehicleManifestPDF(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	svc := services.DocsService{RequestID: requestID(c)}
	pdf, filename, err := svc.GenerateVehicleManifest(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat manifest: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
