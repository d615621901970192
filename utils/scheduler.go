package utils

import (
	"edume/database"
	"edume/models"
	"edume/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// staleCheckAge is how long a check may stay pending before it is voided.
const staleCheckAge = 48 * time.Hour

// InitializeScheduler starts the daily maintenance jobs: course feedback
// aggregation and expiry of checks the gateway never completed.
func InitializeScheduler() {
	c := cron.New()

	c.AddFunc("0 2 * * *", func() {
		log.Println("[SCHEDULER] Recomputing course feedback scores...")
		if err := services.RecomputeFeedback(database.Database.Db); err != nil {
			log.Printf("[SCHEDULER] Feedback recompute failed: %v", err)
		}
	})

	c.AddFunc("30 2 * * *", func() {
		log.Println("[SCHEDULER] Expiring stale pending checks...")
		ExpireStaleChecks()
	})

	c.Start()
	log.Println("[SCHEDULER] Maintenance scheduler started")
}

// ExpireStaleChecks cancels pending checks older than staleCheckAge. The
// status guard in the update is the same compare-and-set the payment callback
// uses, so a check paid while this job runs is left alone.
func ExpireStaleChecks() {
	db := database.Database.Db
	cutoff := time.Now().Add(-staleCheckAge)

	res := db.Model(&models.Check{}).
		Where("status = ? AND created_at < ?", models.CheckStatusPending, cutoff).
		Update("status", models.CheckStatusCancelled)
	if res.Error != nil {
		log.Printf("[SCHEDULER] Error expiring checks: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Cancelled %d stale pending checks", res.RowsAffected)
	}
}
