// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageMetadata carries the search payload attached to an assistant
// message that resulted from a successful paper search. Verification is
// filled in later when the user triggers an AI verification pass; it is
// session-scoped and not written back to the store.
type MessageMetadata struct {
	// Papers holds the retrieved documents, in backend order.
	Papers []Paper `json:"papers" yaml:"papers"`

	// SearchMeta is the classification and timing metadata for the search.
	SearchMeta SearchMeta `json:"searchMetadata" yaml:"search_metadata"`

	// Verification is the AI verification result, once requested.
	Verification *Verification `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// Message is one turn in a conversation. Metadata is present only on
// assistant messages produced by a successful search.
type Message struct {
	// Role is "user" or "assistant".
	Role Role `json:"role" yaml:"role"`

	// Content is the message text.
	Content string `json:"content" yaml:"content"`

	// CreatedAt is the message timestamp.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	// Metadata holds papers and search metadata on assistant messages.
	Metadata *MessageMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasPapers reports whether the message carries at least one retrieved
// paper, i.e. whether a verification pass can target it.
func (m Message) HasPapers() bool {
	return m.Role == RoleAssistant && m.Metadata != nil && len(m.Metadata.Papers) > 0
}

// TranscriptNameLimit is the maximum display-name length, in characters,
// derived from the first user message; longer messages are truncated with
// an ellipsis.
const TranscriptNameLimit = 50

// TranscriptName derives a display title from the first user message:
// the first 50 characters, with "..." appended when truncated. Truncation
// counts runes, never bytes, so a multibyte character is kept whole and
// the name stays valid UTF-8 through the JSON persist path.
func TranscriptName(initialMessage string) string {
	runes := []rune(initialMessage)
	if len(runes) > TranscriptNameLimit {
		return string(runes[:TranscriptNameLimit]) + "..."
	}
	return initialMessage
}

// Transcript is a persisted conversation. ID is assigned at creation and
// immutable; it is time-based and doubles as creation order.
type Transcript struct {
	// ID is the unique transcript identifier (millisecond timestamp).
	ID int64 `json:"id" yaml:"id"`

	// Name is the display title, derived from the first user message
	// unless explicitly renamed.
	Name string `json:"name" yaml:"name"`

	// Messages is the conversation in insertion (chronological) order.
	Messages []Message `json:"messages" yaml:"messages"`

	// MessageCount caches len(Messages); kept in sync on every update.
	MessageCount int `json:"messageCount" yaml:"message_count"`

	// CreatedAt is the immutable creation timestamp.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	// LastUpdated is bumped on every mutation.
	LastUpdated time.Time `json:"lastUpdated" yaml:"last_updated"`
}
