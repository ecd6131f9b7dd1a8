package jobs

import (
	"log"
	"strconv"
	"time"

	"tourapp/internal/repositories"
	"tourapp/internal/utils"

	"github.com/robfig/cron/v3"
)

// InitCronJobs mendaftarkan pekerjaan terjadwal lalu menjalankan scheduler.
func InitCronJobs(c *cron.Cron) error {
	// Tiap tengah malam: bersihkan pengumuman kedaluwarsa beserta catatan bacanya.
	_, err := c.AddFunc("0 0 * * *", func() {
		repo := repositories.AnnouncementRepository{}
		n, err := repo.PurgeExpired(time.Now())
		if err != nil {
			log.Printf("cron: gagal purge pengumuman kedaluwarsa: %v", err)
			return
		}
		if n > 0 {
			utils.LogEvent("", "announcement", "purge_expired", "deleted="+strconv.FormatInt(n, 10))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
