package domain

import "errors"

// QueryOptions configures a single query against a motivation session.
type QueryOptions struct {
	FulfillmentPrompt string
	Temperature       float64
	MaxTokens         int
}

// State is the observable state of a learner's motivation feed.
type State struct {
	Text      string `json:"text"`
	IsLoading bool   `json:"is_loading"`
}

// MountRequest identifies the learner whose dashboard was opened.
type MountRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

var (
	// ErrEmptyReply marks a query that succeeded without any text.
	ErrEmptyReply = errors.New("empty reply")
	// ErrUnknownLearner is returned for a learner that was never mounted.
	ErrUnknownLearner = errors.New("learner not mounted")
	// ErrMissingCredential is returned by transports invoked without a key.
	ErrMissingCredential = errors.New("missing credential")
)
