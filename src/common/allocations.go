package common

import (
	"log"
	"resort/src/config"
	"resort/src/db"
	"resort/src/models"
	"resort/src/types"
	"time"

	"gorm.io/gorm"
)

// ExpireStaleAllocations cancels pending allocations whose hold window has
// lapsed so they stop blocking availability. Runs from the scheduler; see
// boot.InitScheduler.
func ExpireStaleAllocations() {
	cutoff := time.Now().Add(-config.PendingHoldTTL())
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Allocation{}).
			Where("status = ?", types.ALLOCATION_PENDING).
			Where("created_at < ?", cutoff).
			Update("status", types.ALLOCATION_CANCELLED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("Expired %d stale pending allocations\n", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error expiring stale allocations: %s\n", err.Error())
	}
}
