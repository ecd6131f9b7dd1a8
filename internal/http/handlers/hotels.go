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

	"github.com/gin-gonic/gin"
)

// GET /api/hotels
func GetHotels(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, name,
		       COALESCE(address,''),
		       COALESCE(city,''),
		       CASE WHEN checkin_date IS NULL THEN NULL ELSE DATE_FORMAT(checkin_date, '%Y-%m-%d') END,
		       CASE WHEN checkout_date IS NULL THEN NULL ELSE DATE_FORMAT(checkout_date, '%Y-%m-%d') END,
		       COALESCE(notes,'')
		FROM hotels
		ORDER BY checkin_date ASC, name ASC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data hotel: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Hotel{}
	for rows.Next() {
		var (
			h        models.Hotel
			checkin  sql.NullString
			checkout sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.City, &checkin, &checkout, &h.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan hotel: " + err.Error()})
			return
		}
		if checkin.Valid {
			h.CheckinDate = checkin.String
		}
		if checkout.Valid {
			h.CheckoutDate = checkout.String
		}
		list = append(list, h)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/hotels/:id
func GetHotelByID(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	h, err := repositories.HotelRepository{}.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query hotel: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h)
}

func validHotelDates(p models.HotelPayload) (any, any, bool) {
	var checkin, checkout any = nil, nil
	if strings.TrimSpace(p.CheckinDate) != "" {
		if !validDate(p.CheckinDate) {
			return nil, nil, false
		}
		checkin = strings.TrimSpace(p.CheckinDate)
	}
	if strings.TrimSpace(p.CheckoutDate) != "" {
		if !validDate(p.CheckoutDate) {
			return nil, nil, false
		}
		checkout = strings.TrimSpace(p.CheckoutDate)
	}
	return checkin, checkout, true
}

// POST /api/hotels  (admin)
func CreateHotel(c *gin.Context) {
	var payload models.HotelPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	checkin, checkout, ok := validHotelDates(payload)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format tanggal harus YYYY-MM-DD"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO hotels (name, address, city, checkin_date, checkout_date, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(payload.Name),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Address)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.City)),
		checkin, checkout,
		intdb.NullIfEmpty(strings.TrimSpace(payload.Notes)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menambah hotel: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "hotel berhasil ditambahkan", "id": id})
}

// PUT /api/hotels/:id  (admin)
func UpdateHotel(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.HotelPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	checkin, checkout, ok := validHotelDates(payload)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format tanggal harus YYYY-MM-DD"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE hotels
		SET name = ?, address = ?, city = ?, checkin_date = ?, checkout_date = ?, notes = ?
		WHERE id = ?
	`, strings.TrimSpace(payload.Name),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Address)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.City)),
		checkin, checkout,
		intdb.NullIfEmpty(strings.TrimSpace(payload.Notes)),
		id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update hotel: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM hotels WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "hotel berhasil diupdate"})
}

// DELETE /api/hotels/:id  (admin) — ikut menghapus kamar & penempatannya.
func DeleteHotel(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	if _, err := intconfig.DB.Exec(`
		UPDATE allotments al
		JOIN rooms rm ON rm.id = al.room_id
		SET al.room_id = NULL
		WHERE rm.hotel_id = ?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal melepas penempatan kamar: " + err.Error()})
		return
	}
	if _, err := intconfig.DB.Exec(`DELETE FROM rooms WHERE hotel_id = ?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus kamar hotel: " + err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus hotel: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "hotel tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "hotel berhasil dihapus"})
}

// GET /api/hotels/:id/rooms
func GetHotelRooms(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rows, err := intconfig.DB.Query(`
		SELECT id, hotel_id, room_number, COALESCE(capacity,0)
		FROM rooms
		WHERE hotel_id = ?
		ORDER BY room_number ASC`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil kamar: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Room{}
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.HotelID, &r.RoomNumber, &r.Capacity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan kamar: " + err.Error()})
			return
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/hotels/:id/rooms  (admin)
func CreateHotelRoom(c *gin.Context) {
	hotelID := pathID(c)
	if hotelID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.RoomPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM hotels WHERE id=?`, hotelID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek hotel: " + err.Error()})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "hotel tidak ditemukan"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO rooms (hotel_id, room_number, capacity)
		VALUES (?, ?, ?)
	`, hotelID, strings.TrimSpace(payload.RoomNumber), payload.Capacity)
	if err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "nomor kamar sudah terdaftar di hotel ini"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menambah kamar: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "kamar berhasil ditambahkan", "id": id})
}

// PUT /api/rooms/:id  (admin)
func UpdateRoom(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.RoomPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE rooms SET room_number = ?, capacity = ? WHERE id = ?
	`, strings.TrimSpace(payload.RoomNumber), payload.Capacity, id)
	if err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "nomor kamar sudah terdaftar di hotel ini"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update kamar: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM rooms WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "kamar berhasil diupdate"})
}

// DELETE /api/rooms/:id  (admin)
func DeleteRoom(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	if _, err := intconfig.DB.Exec(`UPDATE allotments SET room_id = NULL WHERE room_id = ?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal melepas penempatan kamar: " + err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus kamar: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "kamar berhasil dihapus"})
}

// GET /api/hotels/:id/rooming-list — PDF daftar kamar + penghuni.
func GetHotelRoomingListPDF(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	svc := services.DocsService{RequestID: requestID(c)}
	pdf, filename, err := svc.GenerateRoomingList(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat rooming list: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
