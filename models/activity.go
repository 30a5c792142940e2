package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityDateLayout is the calendar-day key format used by the activity
// ledger. Days roll over at local midnight.
const ActivityDateLayout = "2006-01-02"

// ActivityLog holds the structure for the activityLogs collection in mongo,
// keyed by "<userId>_<YYYY-MM-DD>". Count only ever increments.
type ActivityLog struct {
	ID        string             `json:"id" bson:"_id"`
	UserID    string             `json:"userId" bson:"userId"`
	Date      string             `json:"date" bson:"date"`
	Count     int                `json:"count" bson:"count"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// LogActivityRequest is the payload for recording one watch event
type LogActivityRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// HeatmapDay is one rendered cell of the activity heatmap
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// ActivityID builds the activity document key for a student and day
func ActivityID(userID, date string) string {
	return userID + "_" + date
}

// ActivityLevel classifies a daily watch count into a heatmap intensity
// bucket: 0, 1, 2-3, 4+.
func ActivityLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count <= 3:
		return 2
	default:
		return 3
	}
}

// TrailingDays generates the n calendar days ending on today (inclusive),
// oldest first, defaulting each day's count from the given ledger mapping.
func TrailingDays(today time.Time, n int, counts map[string]int) []HeatmapDay {
	days := make([]HeatmapDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(ActivityDateLayout)
		count := counts[date]
		days = append(days, HeatmapDay{
			Date:  date,
			Count: count,
			Level: ActivityLevel(count),
		})
	}
	return days
}

// WeeklyRows groups a day sequence into rows of seven for the heatmap grid.
// The final row may be shorter when the sequence length is not a multiple
// of seven.
func WeeklyRows(days []HeatmapDay) [][]HeatmapDay {
	var weeks [][]HeatmapDay
	for i := 0; i < len(days); i += 7 {
		end := i + 7
		if end > len(days) {
			end = len(days)
		}
		weeks = append(weeks, days[i:end])
	}
	return weeks
}
