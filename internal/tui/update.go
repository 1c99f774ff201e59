package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfellows/tend/internal/habits"
	"github.com/jfellows/tend/internal/logging"
	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/provider"
)

const chatTimeout = 2 * time.Minute

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 6 // header, input, status, help
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(msg.Width - 4)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			if m.waiting {
				return m, nil
			}
			return m.submit()
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			logging.Error("provider call failed", "err", msg.err)
			m.errText = msg.err.Error()
			m.refreshViewport()
			return m, nil
		}
		conv, err := m.manager.AppendMessage(m.conv.ID, models.RoleAssistant, msg.content)
		if err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.conv = &conv
		m.lines = append(m.lines, renderMessage(models.Message{Role: models.RoleAssistant, Content: msg.content}))
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit handles the current input line: built-in command words run locally,
// anything else goes to the provider.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return m, nil
	}
	m.textarea.Reset()
	m.errText = ""

	fields := strings.Fields(text)
	switch fields[0] {
	case "quit", "exit":
		m.quitting = true
		return m, tea.Quit
	case "habits":
		m.lines = append(m.lines, renderCatalog())
		m.refreshViewport()
		return m, nil
	case "stats":
		out, err := m.tracker.FormatSummary(7)
		if err != nil {
			m.errText = err.Error()
		} else {
			m.lines = append(m.lines, noteStyle.Render(out))
		}
		m.refreshViewport()
		return m, nil
	case "list":
		m.lines = append(m.lines, m.renderRecent())
		m.refreshViewport()
		return m, nil
	case "new":
		convType := string(models.TypeGeneral)
		if len(fields) > 1 {
			convType = fields[1]
		}
		conv, err := m.manager.Create(convType, "")
		if err != nil {
			m.errText = err.Error()
			m.refreshViewport()
			return m, nil
		}
		m.conv = &conv
		m.lines = renderTranscript(&conv)
		m.lines = append(m.lines, noteStyle.Render(fmt.Sprintf("Started %s conversation %s", conv.Type, conv.ID)))
		m.refreshViewport()
		return m, nil
	}

	conv, err := m.manager.AppendMessage(m.conv.ID, models.RoleUser, text)
	if err != nil {
		m.errText = err.Error()
		m.refreshViewport()
		return m, nil
	}
	m.conv = &conv
	m.lines = append(m.lines, renderMessage(models.Message{Role: models.RoleUser, Content: text}))
	m.waiting = true
	m.refreshViewport()
	return m, tea.Batch(m.spinner.Tick, m.chatCmd(conv), textarea.Blink)
}

// chatCmd calls the provider off the UI loop with the full transcript.
func (m Model) chatCmd(conv models.Conversation) tea.Cmd {
	msgs := make([]provider.Message, len(conv.Messages))
	for i, msg := range conv.Messages {
		msgs[i] = provider.Message{Role: provider.Role(msg.Role), Content: msg.Content}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		reply, err := m.prov.Chat(ctx, msgs, provider.Options{})
		return replyMsg{content: reply, err: err}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderRecent() string {
	summaries, err := m.manager.ListRecent("", 10)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	var sb strings.Builder
	sb.WriteString("Recent conversations:\n")
	for _, s := range summaries {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&sb, "  %s  %-14s %s\n", s.ID[:8], s.Type, title)
	}
	return noteStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func renderCatalog() string {
	var sb strings.Builder
	sb.WriteString("Tracked habits:\n")
	for _, h := range habits.Catalog {
		fmt.Fprintf(&sb, "  %-18s %s\n", h.ID, h.Description)
	}
	return noteStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
