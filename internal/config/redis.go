package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const timeoutRedisPing = 3 * time.Second

var RDB *redis.Client

// ConnectRedis menghubungkan client Redis bila REDIS_ADDR diisi.
// Redis bersifat opsional: tanpa Redis, cache settings & unread jatuh ke DB.
func ConnectRedis(env Env) *redis.Client {
	if env.RedisAddr == "" {
		log.Println("REDIS_ADDR kosong, cache Redis dinonaktifkan")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Username: env.RedisUser,
		Password: env.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeoutRedisPing)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Gagal konek Redis (%s), lanjut tanpa cache: %v", env.RedisAddr, err)
		_ = rdb.Close()
		return nil
	}

	log.Println("Berhasil konek ke Redis")
	RDB = rdb
	return rdb
}

func CloseRedis() {
	if RDB != nil {
		_ = RDB.Close()
		RDB = nil
	}
}
