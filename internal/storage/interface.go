package storage

import "github.com/jfellows/tend/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Conversations
	SaveConversation(models.Conversation) error
	GetConversation(id string) (models.Conversation, error)
	ListConversations(convType models.ConversationType, limit int) ([]models.ConversationSummary, error)

	// Habit logs
	SaveHabitLog(models.HabitLog) error
	GetHabitLog(habitID, day string) (models.HabitLog, error)
	QueryHabitLogs(habitID, from, to string) ([]models.HabitLog, error)

	// Utils
	GetConfigPath() string
}
