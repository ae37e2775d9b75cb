package occupancy

import "time"

// RoomInventory is the subset of a room type that availability math
// needs. Capacity and Price ride along for display only.
type RoomInventory struct {
	ID         int64
	Name       string
	TotalCount int
	Capacity   int
	Price      float64
}

// DayAvailability is one cell of a calendar grid.
type DayAvailability struct {
	Date      time.Time `json:"date"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
}

// Badge labels for a room type's availability on a date.
const (
	BadgeFullyBooked        = "Fully Booked"
	BadgePartiallyAvailable = "Partially Available"
	BadgeFullyAvailable     = "Fully Available"
)

// Severity is the display tier for an occupancy rate.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ForDate computes how many rooms of a type are free on a date.
// Available is clamped to zero: a negative count means the stored data
// is overbooked, which the caller should log, but the number shown to
// a guest must never go below zero.
func ForDate(room RoomInventory, date time.Time, intervals []Interval) DayAvailability {
	available := room.TotalCount - OccupiedCount(room.ID, date, intervals)
	if available < 0 {
		available = 0
	}
	return DayAvailability{Date: Day(date), Total: room.TotalCount, Available: available}
}

// ForRange returns one entry per calendar day in [start, end],
// inclusive on both ends, in chronological order.
func ForRange(room RoomInventory, start, end time.Time, intervals []Interval) []DayAvailability {
	var days []DayAvailability
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, ForDate(room, d, intervals))
	}
	return days
}

// Badge classifies an availability count. The thresholds are exact
// equalities.
func Badge(available, total int) string {
	switch {
	case available == 0:
		return BadgeFullyBooked
	case available == total:
		return BadgeFullyAvailable
	default:
		return BadgePartiallyAvailable
	}
}

// OccupancyRate returns the percentage of rooms occupied. A zero total
// reads as 0% occupied rather than dividing by zero.
func OccupancyRate(available, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(total-available) / float64(total) * 100
}

// SeverityFor maps an occupancy rate to its tier: 80% and up is high,
// 50% and up is medium, everything below is low.
func SeverityFor(rate float64) Severity {
	switch {
	case rate >= 80:
		return SeverityHigh
	case rate >= 50:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
