package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	intconfig "tourapp/internal/config"
	"tourapp/internal/repositories"
	"tourapp/internal/utils"

	"github.com/redis/go-redis/v9"
)

const (
	settingsCacheKey = "tourapp:settings"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsCache melapisi SettingsRepository dengan cache Redis ber-TTL.
// Tanpa Redis semuanya langsung ke DB.
type SettingsCache struct {
	Repo      repositories.SettingsRepository
	RDB       *redis.Client
	RequestID string
}

func (s SettingsCache) rdb() *redis.Client {
	if s.RDB != nil {
		return s.RDB
	}
	return intconfig.RDB
}

// GetAll membaca settings dari cache; miss atau error Redis jatuh ke DB.
func (s SettingsCache) GetAll(ctx context.Context) (map[string]string, error) {
	rdb := s.rdb()
	if rdb != nil {
		if raw, err := rdb.Get(ctx, settingsCacheKey).Result(); err == nil {
			out := map[string]string{}
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				return out, nil
			}
			// cache korup: buang dan lanjut ke DB
			_ = rdb.Del(ctx, settingsCacheKey).Err()
		}
	}

	values, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		if raw, err := json.Marshal(values); err == nil {
			_ = rdb.Set(ctx, settingsCacheKey, raw, settingsCacheTTL).Err()
		}
	}

	return values, nil
}

// UpsertMany menulis ke DB lalu membuang cache supaya pembaca berikutnya segar.
func (s SettingsCache) UpsertMany(ctx context.Context, values map[string]string) error {
	if err := s.Repo.UpsertMany(values); err != nil {
		return err
	}

	if rdb := s.rdb(); rdb != nil {
		_ = rdb.Del(ctx, settingsCacheKey).Err()
	}

	utils.LogEvent(s.RequestID, "settings", "upsert", "keys="+strconv.Itoa(len(values)))
	return nil
}
