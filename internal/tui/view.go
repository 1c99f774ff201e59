package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jfellows/tend/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting..."
	}

	status := ""
	if m.waiting {
		status = m.spinner.View() + " thinking..."
	}
	if m.errText != "" {
		status = errorStyle.Render(m.errText)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewport.View(),
		status,
		m.textarea.View(),
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	info := m.prov.ModelInfo()
	title := m.conv.Title
	if title == "" {
		title = string(m.conv.Type)
	}
	return headerStyle.Render(fmt.Sprintf("tend · %s · %s/%s", title, info.Provider, info.Model))
}

func renderTranscript(conv *models.Conversation) []string {
	lines := make([]string, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		lines = append(lines, renderMessage(msg))
	}
	return lines
}

func renderMessage(msg models.Message) string {
	label := userLabelStyle.Render("You")
	if msg.Role == models.RoleAssistant {
		label = assistantLabelStyle.Render("Assistant")
	}
	return fmt.Sprintf("%s: %s", label, msg.Content)
}
