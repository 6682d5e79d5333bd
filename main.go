package main

import (
	"log"
	"os"
	"strconv"

	"Wander/CronJobs"
	"Wander/FiberConfig"
	"Wander/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Models.Connect()

	retentionDays := 30
	if v := os.Getenv("TRIP_RETENTION_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			retentionDays = parsed
		}
	}
	janitor := CronJobs.NewTripJanitor(retentionDays, false)
	if err := janitor.Start(); err != nil {
		log.Printf("Failed to start trip cleanup scheduler: %v", err)
	}

	FiberConfig.FiberConfig()
}
