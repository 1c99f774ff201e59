package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfellows/tend/internal/conversation"
	"github.com/jfellows/tend/internal/habits"
	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/provider"
)

// replyMsg carries the provider's response (or failure) back into Update.
type replyMsg struct {
	content string
	err     error
}

type Model struct {
	manager *conversation.Manager
	tracker *habits.Tracker
	prov    provider.Provider
	conv    *models.Conversation

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	keys     KeyMap
	help     help.Model

	// lines is the rendered transcript plus any local command output,
	// rebuilt from the conversation on session switch.
	lines    []string
	waiting  bool
	errText  string
	width    int
	height   int
	ready    bool
	quitting bool
}

func NewModel(mgr *conversation.Manager, tracker *habits.Tracker, prov provider.Provider, conv *models.Conversation) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message (or: habits, stats, new <type>, list, quit)"
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		manager:  mgr,
		tracker:  tracker,
		prov:     prov,
		conv:     conv,
		textarea: ta,
		spinner:  sp,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	m.lines = renderTranscript(conv)
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Run starts the interactive chat session and blocks until the user quits.
func Run(mgr *conversation.Manager, tracker *habits.Tracker, prov provider.Provider, conv *models.Conversation) error {
	p := tea.NewProgram(NewModel(mgr, tracker, prov, conv), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
