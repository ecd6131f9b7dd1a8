package handlers

import (
	"net/http"
	"strings"

	intconfig "tourapp/internal/config"
	intdb "tourapp/internal/db"
	"tourapp/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/itinerary?date=YYYY-MM-DD
func GetItinerary(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))

	baseSelect := `
		SELECT
			id,
			DATE_FORMAT(trip_date, '%Y-%m-%d') AS trip_date,
			COALESCE(start_time,'') AS start_time,
			COALESCE(end_time,'') AS end_time,
			title,
			COALESCE(location,'') AS location,
			COALESCE(description,'') AS description,
			COALESCE(sort_order,0) AS sort_order
		FROM itinerary_items
	`

	where := ""
	args := []any{}
	if date != "" {
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "format date harus YYYY-MM-DD"})
			return
		}
		where = " WHERE trip_date = ? "
		args = append(args, date)
	}

	rows, err := intconfig.DB.Query(baseSelect+where+" ORDER BY trip_date ASC, sort_order ASC, start_time ASC", args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil jadwal: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.ItineraryItem{}
	for rows.Next() {
		var it models.ItineraryItem
		if err := rows.Scan(&it.ID, &it.TripDate, &it.StartTime, &it.EndTime, &it.Title, &it.Location, &it.Description, &it.SortOrder); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan jadwal: " + err.Error()})
			return
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/itinerary  (admin)
func CreateItineraryItem(c *gin.Context) {
	var payload models.ItineraryPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	if !validDate(payload.TripDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format trip_date harus YYYY-MM-DD"})
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO itinerary_items (trip_date, start_time, end_time, title, location, description, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(payload.TripDate),
		intdb.NullIfEmpty(strings.TrimSpace(payload.StartTime)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.EndTime)),
		strings.TrimSpace(payload.Title),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Location)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Description)),
		payload.SortOrder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menambah agenda: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "agenda berhasil ditambahkan", "id": id})
}

// PUT /api/itinerary/:id  (admin)
func UpdateItineraryItem(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.ItineraryPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	if !validDate(payload.TripDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format trip_date harus YYYY-MM-DD"})
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE itinerary_items
		SET trip_date = ?, start_time = ?, end_time = ?, title = ?, location = ?, description = ?, sort_order = ?
		WHERE id = ?
	`, strings.TrimSpace(payload.TripDate),
		intdb.NullIfEmpty(strings.TrimSpace(payload.StartTime)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.EndTime)),
		strings.TrimSpace(payload.Title),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Location)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Description)),
		payload.SortOrder,
		id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update agenda: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM itinerary_items WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "agenda tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "agenda berhasil diupdate"})
}

// DELETE /api/itinerary/:id  (admin)
func DeleteItineraryItem(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM itinerary_items WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus agenda: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "agenda tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "agenda berhasil dihapus"})
}
