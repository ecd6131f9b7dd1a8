package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "tourapp/internal/config"
	intdb "tourapp/internal/db"
	"tourapp/internal/domain/models"
	"tourapp/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/allotments?date=&user_id=
func GetAllotments(c *gin.Context) {
	where := []string{"1=1"}
	args := []any{}

	if date := strings.TrimSpace(c.Query("date")); date != "" {
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "format date harus YYYY-MM-DD"})
			return
		}
		where = append(where, "a.allot_date = ?")
		args = append(args, date)
	}
	if uidStr := strings.TrimSpace(c.Query("user_id")); uidStr != "" {
		uid, err := strconv.ParseInt(uidStr, 10, 64)
		if err != nil || uid <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id tidak valid"})
			return
		}
		where = append(where, "a.user_id = ?")
		args = append(args, uid)
	}

	rows, err := intconfig.DB.Query(`
		SELECT a.id,
		       DATE_FORMAT(a.allot_date, '%Y-%m-%d'),
		       a.user_id,
		       COALESCE(u.name,''),
		       a.vehicle_id,
		       a.room_id,
		       COALESCE(a.notes,'')
		FROM allotments a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY a.allot_date ASC, u.name ASC`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil penempatan: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Allotment{}
	for rows.Next() {
		var a models.Allotment
		if err := rows.Scan(&a.ID, &a.AllotDate, &a.UserID, &a.TravelerName, &a.VehicleID, &a.RoomID, &a.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan penempatan: " + err.Error()})
			return
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/allotments  (admin) — satu baris per (tanggal, peserta); kiriman ulang menimpa.
func UpsertAllotment(c *gin.Context) {
	var payload models.AllotmentPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	if !validDate(payload.AllotDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format allot_date harus YYYY-MM-DD"})
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE id=?`, payload.UserID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek peserta: " + err.Error()})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "peserta tidak ditemukan"})
		return
	}
	if payload.VehicleID != nil {
		if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id=?`, *payload.VehicleID).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek kendaraan: " + err.Error()})
			return
		}
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
			return
		}
	}
	if payload.RoomID != nil {
		if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM rooms WHERE id=?`, *payload.RoomID).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek kamar: " + err.Error()})
			return
		}
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
			return
		}
	}

	_, err := intconfig.DB.Exec(`
		INSERT INTO allotments (allot_date, user_id, vehicle_id, room_id, notes)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE vehicle_id = VALUES(vehicle_id), room_id = VALUES(room_id), notes = VALUES(notes)
	`, strings.TrimSpace(payload.AllotDate),
		payload.UserID,
		payload.VehicleID,
		payload.RoomID,
		intdb.NullIfEmpty(strings.TrimSpace(payload.Notes)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan penempatan: " + err.Error()})
		return
	}

	utils.LogEvent(requestID(c), "allotment", "upsert",
		"date="+payload.AllotDate+" user_id="+itoa64(payload.UserID))
	c.JSON(http.StatusOK, gin.H{"message": "penempatan berhasil disimpan"})
}

// DELETE /api/allotments/:id  (admin)
func DeleteAllotment(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM allotments WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus penempatan: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "penempatan tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "penempatan berhasil dihapus"})
}
