package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/jfellows/tend/internal/habits"
)

type HabitsCmd struct {
	List HabitsListCmd `cmd:"" default:"1" help:"Show the habit catalog."`
	Log  HabitsLogCmd  `cmd:"" help:"Log a habit for a day."`
}

type HabitsListCmd struct{}

func (c *HabitsListCmd) Run(ctx *Context) error {
	fmt.Println("Tracked habits:")
	for _, h := range habits.Catalog {
		fmt.Printf("  %-18s %s\n", h.ID, h.Description)
	}
	return nil
}

type HabitsLogCmd struct {
	Habit  string `help:"Habit id (see 'tend habits')."`
	Date   string `help:"Day to log, YYYY-MM-DD. Defaults to today."`
	Done   bool   `help:"Mark the habit completed." xor:"outcome"`
	Missed bool   `help:"Mark the habit missed." xor:"outcome"`
	Notes  string `help:"Optional notes."`
}

func (c *HabitsLogCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	completed := c.Done
	habitID := c.Habit
	notes := c.Notes

	// With no flags at all, walk through an interactive form instead.
	if habitID == "" {
		options := make([]huh.Option[string], len(habits.Catalog))
		for i, h := range habits.Catalog {
			options[i] = huh.NewOption(h.Description, h.ID)
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Habit").
					Options(options...).
					Value(&habitID),
				huh.NewConfirm().
					Title("Completed?").
					Value(&completed),
				huh.NewInput().
					Title("Notes").
					Value(&notes),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	} else if !c.Done && !c.Missed {
		return fmt.Errorf("specify --done or --missed")
	}

	if c.Date != "" {
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", c.Date)
		}
	}

	tracker := ctx.tracker()
	log, err := tracker.Log(habitID, c.Date, completed, strings.TrimSpace(notes))
	if err != nil {
		return err
	}

	status := "missed"
	if log.Completed {
		status = "done"
	}
	fmt.Printf("✓ Logged %s as %s for %s\n", log.HabitID, status, log.Day)
	return nil
}
