package habits

import (
	"errors"
	"fmt"
)

// Habit is one entry in the static catalog. The catalog is defined once at
// build time and is read-only; per-user state lives in habit logs.
type Habit struct {
	ID          string
	Name        string
	Description string
}

var ErrUnknownHabit = errors.New("unknown habit")

// Catalog is the ordered set of tracked habits.
var Catalog = []Habit{
	{ID: "workout", Name: "45 min workout", Description: "45 min workout (or minimum 20 min)"},
	{ID: "walk_after_meals", Name: "10 min walk after meals", Description: "10 min walk after meals"},
	{ID: "eat_clean", Name: "Eat clean", Description: "Eat clean; no junk"},
	{ID: "sleep_timing", Name: "Sleep timing", Description: "Last food >=4 hrs before bed"},
	{ID: "reading", Name: "30 min reading", Description: "30 min reading"},
}

// Get returns the catalog entry for id, or ErrUnknownHabit.
func Get(id string) (Habit, error) {
	for _, h := range Catalog {
		if h.ID == id {
			return h, nil
		}
	}
	return Habit{}, fmt.Errorf("%w: %q", ErrUnknownHabit, id)
}

// IDs returns all habit ids in catalog order.
func IDs() []string {
	ids := make([]string, len(Catalog))
	for i, h := range Catalog {
		ids[i] = h.ID
	}
	return ids
}
