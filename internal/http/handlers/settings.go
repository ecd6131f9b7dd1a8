package handlers

import (
	"net/http"
	"strings"

	"tourapp/internal/repositories"
	"tourapp/internal/services"

	"github.com/gin-gonic/gin"
)

func settingsCache(c *gin.Context) services.SettingsCache {
	return services.SettingsCache{
		Repo:      repositories.SettingsRepository{},
		RequestID: requestID(c),
	}
}

// GET /api/settings — publik, dipakai frontend sebelum login (judul trip, kontak panitia).
func GetSettings(c *gin.Context) {
	values, err := settingsCache(c).GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil pengaturan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, values)
}

// PUT /api/settings  (admin) — upsert massal key/value.
func UpdateSettings(c *gin.Context) {
	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body harus objek key/value string"})
		return
	}
	if len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tidak ada pengaturan yang dikirim"})
		return
	}

	values := map[string]string{}
	for k, v := range payload {
		key := strings.TrimSpace(k)
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key pengaturan tidak boleh kosong"})
			return
		}
		values[key] = v
	}

	if err := settingsCache(c).UpsertMany(c.Request.Context(), values); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan pengaturan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pengaturan berhasil disimpan"})
}
