package driven

import "context"

// Message roles understood by chat services.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of RoleSystem, RoleUser, or RoleAssistant.
	Role string

	// Content is the message text.
	Content string
}

// LLMService turns an ordered message history into a single answer.
//
// The service is treated as opaque: prompt quality and generation
// behaviour are its concern, not the pipeline's.
type LLMService interface {
	// Chat sends the full message history and returns the assistant's
	// response content.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
