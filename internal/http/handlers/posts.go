package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "tourapp/internal/config"
	intdb "tourapp/internal/db"
	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
	"tourapp/internal/utils"

	"github.com/gin-gonic/gin"
)

const postSelect = `
	SELECT
		p.id,
		p.user_id,
		COALESCE(u.name,'') AS author_name,
		p.place_name,
		COALESCE(p.description,'') AS description,
		COALESCE(p.media_url,'') AS media_url,
		COALESCE(p.tags,'') AS tags,
		p.status,
		p.approved_by,
		p.approved_at,
		p.created_at,
		p.updated_at
	FROM posts p
	LEFT JOIN users u ON u.id = p.user_id
`

func scanPostRow(scan func(dest ...any) error) (models.Post, error) {
	var (
		p          models.Post
		approvedBy sql.NullInt64
		approvedAt sql.NullTime
	)
	err := scan(
		&p.ID,
		&p.UserID,
		&p.AuthorName,
		&p.PlaceName,
		&p.Description,
		&p.MediaURL,
		&p.Tags,
		&p.Status,
		&approvedBy,
		&approvedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if approvedBy.Valid {
		p.ApprovedBy = &approvedBy.Int64
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		p.ApprovedAt = &t
	}
	return p, nil
}

// GET /api/posts?status=&mine=1&tag=
// Non-admin hanya melihat approved, kecuali mine=1 (semua status milik sendiri).
func GetPosts(c *gin.Context) {
	rc := reqCtx(c)

	where := []string{"1=1"}
	args := []any{}

	mine := strings.TrimSpace(c.Query("mine")) == "1"
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	tag := strings.TrimSpace(c.Query("tag"))

	switch {
	case mine:
		where = append(where, "p.user_id = ?")
		args = append(args, rc.UserID)
		if status != "" {
			where = append(where, "p.status = ?")
			args = append(args, status)
		}
	case rc.IsAdmin() && status != "":
		where = append(where, "p.status = ?")
		args = append(args, status)
	case rc.IsAdmin():
		// admin tanpa filter melihat semua
	default:
		where = append(where, "p.status = ?")
		args = append(args, domain.PostApproved)
	}

	if tag != "" {
		where = append(where, "p.tags LIKE ?")
		args = append(args, "%"+strings.ToLower(tag)+"%")
	}

	query := postSelect + " WHERE " + strings.Join(where, " AND ") + " ORDER BY p.created_at DESC, p.id DESC"
	if page, limit, ok := pageLimit(c); ok {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil postingan: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Post{}
	for rows.Next() {
		p, err := scanPostRow(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan postingan: " + err.Error()})
			return
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/posts
func CreatePost(c *gin.Context) {
	var payload models.PostPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	if strings.TrimSpace(payload.PlaceName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_name wajib diisi"})
		return
	}

	rc := reqCtx(c)
	tags := strings.Join(utils.SplitTagList(payload.Tags), ",")

	res, err := intconfig.DB.Exec(`
		INSERT INTO posts (user_id, place_name, description, media_url, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, rc.UserID,
		strings.TrimSpace(payload.PlaceName),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Description)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.MediaURL)),
		intdb.NullIfEmpty(tags),
		domain.PostPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan postingan: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "postingan terkirim, menunggu persetujuan admin", "id": id})
}

// PUT /api/posts/:id — pemilik selama masih pending, atau admin.
func UpdatePost(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.PostPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if strings.TrimSpace(payload.PlaceName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_name wajib diisi"})
		return
	}

	var (
		ownerID int64
		status  string
	)
	err := intconfig.DB.QueryRow(`SELECT user_id, status FROM posts WHERE id = ?`, id).Scan(&ownerID, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "postingan tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek postingan: " + err.Error()})
		return
	}

	rc := reqCtx(c)
	if !rc.IsAdmin() {
		if ownerID != rc.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "tidak boleh mengubah postingan orang lain"})
			return
		}
		if status != domain.PostPending {
			c.JSON(http.StatusConflict, gin.H{"error": "postingan yang sudah dimoderasi tidak bisa diubah"})
			return
		}
	}

	tags := strings.Join(utils.SplitTagList(payload.Tags), ",")

	// edit oleh pemilik mengembalikan status ke pending untuk dimoderasi ulang
	newStatus := status
	if !rc.IsAdmin() {
		newStatus = domain.PostPending
	}

	_, err = intconfig.DB.Exec(`
		UPDATE posts
		SET place_name = ?, description = ?, media_url = ?, tags = ?, status = ?, updated_at = NOW()
		WHERE id = ?
	`, strings.TrimSpace(payload.PlaceName),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Description)),
		intdb.NullIfEmpty(strings.TrimSpace(payload.MediaURL)),
		intdb.NullIfEmpty(tags),
		newStatus,
		id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update postingan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "postingan berhasil diupdate"})
}

// DELETE /api/posts/:id — pemilik atau admin.
func DeletePost(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)

	var ownerID int64
	err := intconfig.DB.QueryRow(`SELECT user_id FROM posts WHERE id = ?`, id).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "postingan tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek postingan: " + err.Error()})
		return
	}
	if !rc.IsAdmin() && ownerID != rc.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "tidak boleh menghapus postingan orang lain"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus postingan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "postingan berhasil dihapus"})
}

// PUT /api/posts/:id/approve  (admin)
func ApprovePost(c *gin.Context) {
	moderatePost(c, domain.PostApproved)
}

// PUT /api/posts/:id/reject  (admin)
func RejectPost(c *gin.Context) {
	moderatePost(c, domain.PostRejected)
}

func moderatePost(c *gin.Context, status string) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	res, err := intconfig.DB.Exec(`
		UPDATE posts
		SET status = ?, approved_by = ?, approved_at = NOW(), updated_at = NOW()
		WHERE id = ?
	`, status, rc.UserID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal moderasi postingan: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM posts WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "postingan tidak ditemukan"})
			return
		}
	}

	utils.LogEvent(requestID(c), "post", "moderate", "post_id="+itoa64(id)+" status="+status)
	c.JSON(http.StatusOK, gin.H{"message": "status postingan: " + status})
}
