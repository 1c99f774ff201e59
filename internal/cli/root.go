// Package cli implements the tend command set. Each command is a kong
// struct with a Run method taking the shared Context.
package cli

import (
	"github.com/jfellows/tend/internal/config"
	"github.com/jfellows/tend/internal/conversation"
	"github.com/jfellows/tend/internal/habits"
	"github.com/jfellows/tend/internal/storage"
)

type Context struct {
	Config *config.Config
	Store  storage.Provider
}

// loadStore opens the store for commands that need existing data.
func (ctx *Context) loadStore() error {
	return ctx.Store.Load()
}

func (ctx *Context) manager() *conversation.Manager {
	return conversation.NewManager(ctx.Store)
}

func (ctx *Context) tracker() *habits.Tracker {
	return habits.NewTracker(ctx.Store)
}
