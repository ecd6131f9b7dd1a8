package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
	"tourapp/internal/repositories"
	"tourapp/internal/utils"

	"github.com/redis/go-redis/v9"
)

const (
	unreadCacheKeyPrefix = "tourapp:unread:"
	unreadCacheTTL       = 30 * time.Second
)

// AnnouncementService membungkus validasi audience + poll dengan cache hitungan unread.
type AnnouncementService struct {
	Repo      repositories.AnnouncementRepository
	RDB       *redis.Client
	RequestID string
}

func (s AnnouncementService) rdb() *redis.Client {
	if s.RDB != nil {
		return s.RDB
	}
	return intconfig.RDB
}

// ValidatePayload menormalkan payload admin jadi model siap simpan.
func (s AnnouncementService) ValidatePayload(p models.AnnouncementPayload, createdBy int64) (models.Announcement, error) {
	var out models.Announcement

	audience := strings.ToLower(strings.TrimSpace(p.Audience))
	switch audience {
	case domain.AudienceAll:
	case domain.AudienceVehicle:
		if p.VehicleID == nil || *p.VehicleID <= 0 {
			return out, domain.ValidationError{Field: "vehicle_id", Msg: "wajib diisi untuk audience vehicle"}
		}
	case domain.AudienceUsers:
		if len(p.Recipients) == 0 {
			return out, domain.ValidationError{Field: "recipients", Msg: "wajib diisi untuk audience users"}
		}
	default:
		return out, domain.ValidationError{Field: "audience", Msg: "harus all, vehicle, atau users"}
	}

	out = models.Announcement{
		Title:     strings.TrimSpace(p.Title),
		Body:      p.Body,
		Audience:  audience,
		CreatedBy: createdBy,
	}
	if audience == domain.AudienceVehicle {
		out.VehicleID = p.VehicleID
	}
	if audience == domain.AudienceUsers {
		out.Recipients = p.Recipients
	}

	if strings.TrimSpace(p.ExpiresAt) != "" {
		t, err := utils.ParseDateTime(p.ExpiresAt)
		if err != nil {
			return out, domain.ValidationError{Field: "expires_at", Msg: "format harus YYYY-MM-DD HH:MM:SS"}
		}
		out.ExpiresAt = &t
	}

	return out, nil
}

// Create menyimpan pengumuman dan membuang cache unread (isi baru untuk semua target).
func (s AnnouncementService) Create(a models.Announcement) (int64, error) {
	id, err := s.Repo.Create(a)
	if err != nil {
		return 0, err
	}
	s.invalidateUnreadAll(context.Background())
	utils.LogEvent(s.RequestID, "announcement", "create", "id="+strconv.FormatInt(id, 10)+" audience="+a.Audience)
	return id, nil
}

// Poll mengembalikan pengumuman unread untuk user beserta hitungannya.
func (s AnnouncementService) Poll(ctx context.Context, userID int64, vehicleID *int64) ([]models.Announcement, error) {
	items, err := s.Repo.PollForUser(userID, vehicleID)
	if err != nil {
		return nil, err
	}

	if rdb := s.rdb(); rdb != nil {
		key := unreadCacheKeyPrefix + strconv.FormatInt(userID, 10)
		_ = rdb.Set(ctx, key, len(items), unreadCacheTTL).Err()
	}

	return items, nil
}

// UnreadCount membaca hitungan unread dari cache; miss menghitung lewat poll.
func (s AnnouncementService) UnreadCount(ctx context.Context, userID int64, vehicleID *int64) (int, error) {
	if rdb := s.rdb(); rdb != nil {
		key := unreadCacheKeyPrefix + strconv.FormatInt(userID, 10)
		if raw, err := rdb.Get(ctx, key).Result(); err == nil {
			if n, err := strconv.Atoi(raw); err == nil {
				return n, nil
			}
		}
	}

	items, err := s.Poll(ctx, userID, vehicleID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// MarkRead mencatat baca lalu membuang cache unread user tersebut.
func (s AnnouncementService) MarkRead(ctx context.Context, announcementID, userID int64) error {
	if err := s.Repo.MarkRead(announcementID, userID); err != nil {
		return err
	}
	if rdb := s.rdb(); rdb != nil {
		_ = rdb.Del(ctx, unreadCacheKeyPrefix+strconv.FormatInt(userID, 10)).Err()
	}
	return nil
}

// invalidateUnreadAll membuang seluruh cache unread. Jumlah user kecil (satu
// rombongan), jadi SCAN per prefix cukup.
func (s AnnouncementService) invalidateUnreadAll(ctx context.Context) {
	rdb := s.rdb()
	if rdb == nil {
		return
	}

	iter := rdb.Scan(ctx, 0, unreadCacheKeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		_ = rdb.Del(ctx, iter.Val()).Err()
	}
}
