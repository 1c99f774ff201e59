package cli

import "fmt"

type StatsCmd struct {
	Days int `help:"Window size in days." default:"7"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	out, err := ctx.tracker().FormatSummary(c.Days)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
