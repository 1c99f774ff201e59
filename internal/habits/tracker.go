package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/storage"
)

const dayFormat = "2006-01-02"

// Stats summarizes one habit over a trailing window of days.
type Stats struct {
	HabitID   string
	Days      int
	Completed int     // days with completed=true in the window
	Logged    int     // days with any log in the window
	Rate      float64 // Completed / Days, in [0,1]
	Streak    int     // consecutive completed days ending today/yesterday; not limited to Days
}

// Tracker logs daily habit completion and computes statistics from stored
// logs. Days with no log count as not completed: silence means the habit was
// skipped, not that data is missing.
type Tracker struct {
	store storage.Provider
	now   func() time.Time
}

func NewTracker(store storage.Provider) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// NewTrackerAt creates a tracker with a fixed clock, for tests.
func NewTrackerAt(store storage.Provider, now func() time.Time) *Tracker {
	return &Tracker{store: store, now: now}
}

func (t *Tracker) today() time.Time {
	return t.now().UTC().Truncate(24 * time.Hour)
}

// Log records a day's completion state for a habit. The habit must exist in
// the catalog; nothing is written otherwise. An empty day defaults to today.
// Logging the same (habit, day) twice replaces the earlier entry.
func (t *Tracker) Log(habitID, day string, completed bool, notes string) (models.HabitLog, error) {
	if _, err := Get(habitID); err != nil {
		return models.HabitLog{}, err
	}

	if day == "" {
		day = t.today().Format(dayFormat)
	} else if _, err := time.Parse(dayFormat, day); err != nil {
		return models.HabitLog{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", day, err)
	}

	entry := models.HabitLog{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		Day:       day,
		Completed: completed,
		Notes:     notes,
		CreatedAt: t.now().UTC(),
	}

	if err := t.store.SaveHabitLog(entry); err != nil {
		return models.HabitLog{}, err
	}

	return entry, nil
}

// CompletionRate returns the fraction of the trailing windowDays with a
// completed log, treating unlogged days as not completed.
func (t *Tracker) CompletionRate(habitID string, windowDays int) (float64, error) {
	stats, err := t.StatsFor(habitID, windowDays)
	if err != nil {
		return 0, err
	}
	return stats.Rate, nil
}

// CurrentStreak counts consecutive completed days walking backward from
// today. A day logged as not completed, or simply missing, breaks the streak.
// Today itself is exempt while still unlogged; the streak then starts at
// yesterday.
func (t *Tracker) CurrentStreak(habitID string) (int, error) {
	if _, err := Get(habitID); err != nil {
		return 0, err
	}

	today := t.today()
	// A streak can't usefully look back further than the stored history;
	// a year is far beyond any realistic unbroken run worth walking.
	from := today.AddDate(-1, 0, 0).Format(dayFormat)
	logs, err := t.store.QueryHabitLogs(habitID, from, today.Format(dayFormat))
	if err != nil {
		return 0, err
	}

	byDay := make(map[string]bool, len(logs))
	for _, l := range logs {
		byDay[l.Day] = l.Completed
	}

	streak := 0
	day := today
	if completed, ok := byDay[day.Format(dayFormat)]; ok {
		if !completed {
			return 0, nil
		}
		streak++
		day = day.AddDate(0, 0, -1)
	} else {
		// Today not logged yet; the day is still in progress.
		day = day.AddDate(0, 0, -1)
	}

	for {
		completed, ok := byDay[day.Format(dayFormat)]
		if !ok || !completed {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak, nil
}

// StatsFor computes completion stats for one habit over the trailing window
// ending today.
func (t *Tracker) StatsFor(habitID string, windowDays int) (Stats, error) {
	if _, err := Get(habitID); err != nil {
		return Stats{}, err
	}
	if windowDays <= 0 {
		windowDays = 7
	}

	today := t.today()
	from := today.AddDate(0, 0, -(windowDays - 1)).Format(dayFormat)
	logs, err := t.store.QueryHabitLogs(habitID, from, today.Format(dayFormat))
	if err != nil {
		return Stats{}, err
	}

	completed := 0
	for _, l := range logs {
		if l.Completed {
			completed++
		}
	}

	streak, err := t.CurrentStreak(habitID)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		HabitID:   habitID,
		Days:      windowDays,
		Completed: completed,
		Logged:    len(logs),
		Rate:      float64(completed) / float64(windowDays),
		Streak:    streak,
	}, nil
}

// WeeklySummary computes 7-day stats for every habit in the catalog.
func (t *Tracker) WeeklySummary() (map[string]Stats, error) {
	return t.Summary(7)
}

// MonthlySummary computes 30-day stats for every habit in the catalog.
func (t *Tracker) MonthlySummary() (map[string]Stats, error) {
	return t.Summary(30)
}

// Summary computes stats over the trailing window for every habit in the
// catalog, independently per habit.
func (t *Tracker) Summary(windowDays int) (map[string]Stats, error) {
	summary := make(map[string]Stats, len(Catalog))
	for _, h := range Catalog {
		stats, err := t.StatsFor(h.ID, windowDays)
		if err != nil {
			return nil, err
		}
		summary[h.ID] = stats
	}
	return summary, nil
}

// FormatSummary renders the habit summary as display text with a completion
// bar per habit.
func (t *Tracker) FormatSummary(windowDays int) (string, error) {
	summary, err := t.Summary(windowDays)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Habit Summary - Last %d days\n", windowDays)
	sb.WriteString(strings.Repeat("=", 50) + "\n")

	for _, h := range Catalog {
		stats := summary[h.ID]
		pct := stats.Rate * 100

		status := "~"
		switch {
		case pct >= 80:
			status = "+"
		case pct < 50:
			status = "-"
		}
		filled := int(pct / 10)
		bar := strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)

		fmt.Fprintf(&sb, "\n%s %s\n", status, h.Name)
		fmt.Fprintf(&sb, "   %d/%d days | %s %.0f%%\n", stats.Completed, stats.Days, bar, pct)
		if stats.Streak > 0 {
			fmt.Fprintf(&sb, "   %d day streak\n", stats.Streak)
		}
	}

	sb.WriteString("\n" + strings.Repeat("=", 50))
	return sb.String(), nil
}
