package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ConversationType string

const (
	TypeDailyCheckin ConversationType = "daily_checkin"
	TypeWeeklyReview ConversationType = "weekly_review"
	TypeRoutine      ConversationType = "routine"
	TypeFinance      ConversationType = "finance"
	TypeGoals        ConversationType = "goals"
	TypeGeneral      ConversationType = "general"
)

// ConversationTypes lists every valid conversation type, in display order.
var ConversationTypes = []ConversationType{
	TypeDailyCheckin,
	TypeWeeklyReview,
	TypeRoutine,
	TypeFinance,
	TypeGoals,
	TypeGeneral,
}

var ErrInvalidType = fmt.Errorf("invalid conversation type")

// ParseConversationType validates a raw string against the closed type set.
func ParseConversationType(s string) (ConversationType, error) {
	for _, t := range ConversationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Message is one turn in a conversation transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is a typed, append-only transcript persisted under a unique id.
// Messages are never edited or removed once appended.
type Conversation struct {
	ID        string           `json:"id"`
	Type      ConversationType `json:"type"`
	Title     string           `json:"title"`
	Messages  []Message        `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
}

// ConversationSummary is the listing view of a conversation, without the
// transcript.
type ConversationSummary struct {
	ID        string           `json:"id"`
	Type      ConversationType `json:"type"`
	Title     string           `json:"title"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
