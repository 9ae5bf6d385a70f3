package domain

import "errors"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of the conversation log. Entries are never
// modified once appended.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is a snapshot of a learner's chat state.
type Conversation struct {
	History   []ChatMessage `json:"history"`
	IsSending bool          `json:"is_sending"`
	Draft     string        `json:"draft"`
}

// DraftRequest updates the text being typed.
type DraftRequest struct {
	Text string `json:"text"`
}

// SendRequest submits a message. When Text is nil the stored draft is sent.
type SendRequest struct {
	Text *string `json:"text,omitempty"`
}

// SendResponse reports whether the message was taken and the resulting state.
type SendResponse struct {
	Accepted     bool         `json:"accepted"`
	Conversation Conversation `json:"conversation"`
}

var (
	// ErrEmptyReply marks a reply that succeeded without any text.
	ErrEmptyReply = errors.New("empty reply")
	// ErrUnknownProvider is returned by the replier factory.
	ErrUnknownProvider = errors.New("unsupported chat provider")
)
