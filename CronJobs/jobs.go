package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Wander/Models"

	"github.com/robfig/cron/v3"
)

// TripJanitor periodically removes anonymous trips that were never claimed.
// Trips created without a user (UserID 0) older than the retention window
// are deleted together with their days and activities.
type TripJanitor struct {
	cronScheduler  *cron.Cron
	retentionDays  int
	runImmediately bool
	jobID          cron.EntryID
}

// NewTripJanitor creates a new janitor with the given retention window
func NewTripJanitor(retentionDays int, runImmediately bool) *TripJanitor {
	return &TripJanitor{
		cronScheduler:  cron.New(cron.WithSeconds()),
		retentionDays:  retentionDays,
		runImmediately: runImmediately,
	}
}

// Start initiates the janitor cron job
func (j *TripJanitor) Start() error {
	var err error
	j.jobID, err = j.cronScheduler.AddFunc("0 0 3 * * *", func() {
		log.Println("Running scheduled trip cleanup")
		j.runCleanup()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	j.cronScheduler.Start()
	log.Printf("Trip cleanup scheduler started - will run daily at 3:00 AM, retention %d days", j.retentionDays)

	if j.runImmediately {
		log.Println("Running initial trip cleanup")
		j.runCleanup()
	}

	return nil
}

// Stop terminates the janitor
func (j *TripJanitor) Stop() {
	if j.cronScheduler != nil {
		j.cronScheduler.Stop()
		log.Println("Trip cleanup scheduler stopped")
	}
}

// runCleanup deletes stale anonymous trips and their children
func (j *TripJanitor) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	var trips []Models.Trip
	if err := Models.DB.Where("user_id = 0 AND created_at < ?", cutoff).Find(&trips).Error; err != nil {
		log.Printf("Trip cleanup query failed: %v", err)
		return
	}
	if len(trips) == 0 {
		return
	}

	deleted := 0
	for _, trip := range trips {
		var days []Models.DayTrip
		if err := Models.DB.Where("trip_id = ?", trip.ID).Find(&days).Error; err != nil {
			log.Printf("Trip cleanup failed loading days for trip %d: %v", trip.ID, err)
			continue
		}
		for _, day := range days {
			Models.DB.Where("day_trip_id = ?", day.ID).Delete(&Models.Activity{})
		}
		Models.DB.Where("trip_id = ?", trip.ID).Delete(&Models.DayTrip{})
		if err := Models.DB.Delete(&trip).Error; err != nil {
			log.Printf("Trip cleanup failed deleting trip %d: %v", trip.ID, err)
			continue
		}
		deleted++
	}

	log.Printf("Trip cleanup removed %d stale anonymous trips", deleted)
}
