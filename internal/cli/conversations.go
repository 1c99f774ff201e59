package cli

import (
	"errors"
	"fmt"

	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/storage"
)

type ConversationsCmd struct {
	List ConversationsListCmd `cmd:"" default:"1" help:"List recent conversations."`
	Show ConversationsShowCmd `cmd:"" help:"Print a conversation transcript."`
}

type ConversationsListCmd struct {
	Type  string `help:"Filter by conversation type." enum:",daily_checkin,weekly_review,routine,finance,goals,general" default:""`
	Limit int    `help:"Maximum number of conversations." default:"10"`
}

func (c *ConversationsListCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	summaries, err := ctx.manager().ListRecent(models.ConversationType(c.Type), c.Limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No conversations yet. Start one with 'tend chat'.")
		return nil
	}

	for _, s := range summaries {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s  %-14s %s\n",
			s.ID, s.UpdatedAt.Local().Format("2006-01-02 15:04"), s.Type, title)
	}
	return nil
}

type ConversationsShowCmd struct {
	ID string `arg:"" help:"Conversation id."`
}

func (c *ConversationsShowCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	conv, err := ctx.manager().Get(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no conversation with id %s", c.ID)
	}
	if err != nil {
		return err
	}

	title := conv.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s [%s] %s\n", conv.ID, conv.Type, title)
	fmt.Printf("Created %s, updated %s, %d messages\n\n",
		conv.CreatedAt.Local().Format("2006-01-02 15:04"),
		conv.UpdatedAt.Local().Format("2006-01-02 15:04"),
		len(conv.Messages))

	for _, msg := range conv.Messages {
		label := "You"
		if msg.Role == models.RoleAssistant {
			label = "Assistant"
		}
		fmt.Printf("%s: %s\n\n", label, msg.Content)
	}
	return nil
}
