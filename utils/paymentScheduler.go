package utils

import (
	"fmt"
	"log"
	"time"

	"learnhub/database"
	courseModels "learnhub/models/course"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PAYMENT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// expireStaleOrders marks CREATED payment orders older than 30 minutes as
// EXPIRED so abandoned checkouts do not pile up as pending purchases.
func expireStaleOrders() {
	db := database.Database.Db
	cutoff := time.Now().Add(-30 * time.Minute)

	res := db.Model(&courseModels.Payment{}).
		Where("status = ? AND created_at < ? AND is_deleted = ?", "CREATED", cutoff, false).
		Update("status", "EXPIRED")
	if res.Error != nil {
		logScheduler("Error expiring stale orders: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Expired %d stale payment orders", res.RowsAffected))
	}
}

// StartPaymentScheduler runs order expiry every 10 minutes.
func StartPaymentScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("*/10 * * * *", expireStaleOrders); err != nil {
		log.Fatalf("Failed to schedule payment order expiry: %v", err)
	}

	c.Start()
	logScheduler("Payment scheduler started")
}
