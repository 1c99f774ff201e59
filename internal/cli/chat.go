package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jfellows/tend/internal/logging"
	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/provider"
	"github.com/jfellows/tend/internal/storage"
	"github.com/jfellows/tend/internal/tui"
)

type ChatCmd struct {
	Type   string `help:"Conversation type." default:"general" enum:"daily_checkin,weekly_review,routine,finance,goals,general"`
	Resume string `help:"Resume an existing conversation by id."`
}

func (c *ChatCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	prov, err := provider.New(ctx.Config)
	if err != nil {
		return err
	}
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := prov.Init(initCtx); err != nil {
		info := prov.ModelInfo()
		logging.Warn("provider not reachable", "provider", info.Provider, "err", err)
		fmt.Println("The assistant may not respond until the provider is available.")
	}

	mgr := ctx.manager()

	var conv models.Conversation
	if c.Resume != "" {
		conv, err = mgr.Get(c.Resume)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no conversation with id %s", c.Resume)
		}
	} else {
		conv, err = mgr.Create(c.Type, "")
	}
	if err != nil {
		return err
	}

	return tui.Run(mgr, ctx.tracker(), prov, &conv)
}
