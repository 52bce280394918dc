// sweep-locks deletes expired review locks across every review
// exercise. Expiry is normally evaluated lazily on reviewer requests;
// this command exists for operators who want a periodic cron sweep on
// quiet courses.
package main

import (
	"log"

	"peer-review-api/config"
	"peer-review-api/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	svc := services.NewLockService(config.DB, nil)
	n, err := svc.SweepAllExpiredLocks()
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	log.Printf("Sweep complete: removed %d expired locks", n)
}
