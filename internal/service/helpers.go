package service

import (
	"fmt"
	"math"
	"time"
)

// MonthRange parses "YYYY-MM" into the [from, to) UTC bounds of that month.
func MonthRange(month string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be in YYYY-MM format: %w", err)
	}
	return from, from.AddDate(0, 1, 0), nil
}

// AverageScore is the mean of the six dimension scores rounded to one
// decimal.
func AverageScore(scores [6]int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return math.Round(float64(sum)/6*10) / 10
}

func truncateError(message string, limit int) string {
	if len(message) > limit {
		return message[:limit]
	}
	return message
}
