package models

import "time"

// HabitLog is one day's completion record for one habit. Exactly one log
// exists per (habit, day); re-logging the same day replaces the earlier
// record.
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
