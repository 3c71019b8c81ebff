package utils

import (
	"log"
	"time"
)

// TimeNowET returns the current time in the US Eastern market timezone.
func TimeNowET() time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}
