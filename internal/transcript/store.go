// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pdiddy/claimchat/pkg/types"
)

// timeNow returns the current time. Declared as a var so tests can
// substitute a deterministic clock.
var timeNow = time.Now

// Store is the repository of chat transcripts. Every operation loads the
// whole collection from the slot, mutates it, and writes it back. Storage
// failures are logged to the warning writer and converted into empty or
// failed results; they never propagate to the caller. Chat keeps working,
// it just stops persisting.
type Store struct {
	slot Slot
	warn io.Writer
}

// NewStore creates a Store over the given slot. Warnings about storage
// failures are written to warn.
func NewStore(slot Slot, warn io.Writer) *Store {
	if warn == nil {
		warn = io.Discard
	}
	return &Store{slot: slot, warn: warn}
}

// Summary is a transcript without its message bodies, for history listings.
type Summary struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	MessageCount int       `json:"messageCount" yaml:"message_count"`
	CreatedAt    time.Time `json:"createdAt" yaml:"created_at"`
	LastUpdated  time.Time `json:"lastUpdated" yaml:"last_updated"`
}

// UpdateFields holds the mutable transcript fields for Update. Nil fields
// are left unchanged.
type UpdateFields struct {
	Name     *string
	Messages []types.Message
}

// List returns summaries of all transcripts sorted by LastUpdated
// descending. It never fails: a missing or unreadable collection yields
// an empty list.
func (s *Store) List() []Summary {
	chats := s.load()

	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastUpdated.After(chats[j].LastUpdated)
	})

	summaries := make([]Summary, 0, len(chats))
	for _, c := range chats {
		summaries = append(summaries, Summary{
			ID:           c.ID,
			Name:         c.Name,
			MessageCount: c.MessageCount,
			CreatedAt:    c.CreatedAt,
			LastUpdated:  c.LastUpdated,
		})
	}
	return summaries
}

// Get returns the transcript with the given id.
func (s *Store) Get(id int64) (types.Transcript, bool) {
	for _, c := range s.load() {
		if c.ID == id {
			return c, true
		}
	}
	return types.Transcript{}, false
}

// Create appends a new transcript to the collection and returns its id.
// The display name is derived from initialMessage; CreatedAt and
// LastUpdated are set to the same instant.
func (s *Store) Create(initialMessage string, messages []types.Message) int64 {
	chats := s.load()
	now := timeNow()

	chat := types.Transcript{
		ID:           generateID(chats, now),
		Name:         types.TranscriptName(initialMessage),
		Messages:     messages,
		MessageCount: len(messages),
		CreatedAt:    now,
		LastUpdated:  now,
	}

	chats = append(chats, chat)
	s.save(chats)
	return chat.ID
}

// Update merges fields into the transcript with the given id and bumps
// LastUpdated. It returns false without side effects when id is unknown.
func (s *Store) Update(id int64, fields UpdateFields) (types.Transcript, bool) {
	chats := s.load()

	for i := range chats {
		if chats[i].ID != id {
			continue
		}

		if fields.Name != nil {
			chats[i].Name = *fields.Name
		}
		if fields.Messages != nil {
			chats[i].Messages = fields.Messages
			chats[i].MessageCount = len(fields.Messages)
		}

		// LastUpdated must strictly increase even when the clock has not
		// advanced past the previous mutation.
		now := timeNow()
		if !now.After(chats[i].LastUpdated) {
			now = chats[i].LastUpdated.Add(time.Millisecond)
		}
		chats[i].LastUpdated = now

		s.save(chats)
		return chats[i], true
	}

	return types.Transcript{}, false
}

// Rename updates the transcript's display name.
func (s *Store) Rename(id int64, newName string) (types.Transcript, bool) {
	return s.Update(id, UpdateFields{Name: &newName})
}

// Delete removes the transcript with the given id and reports whether a
// record was actually removed. The collection is persisted regardless.
func (s *Store) Delete(id int64) bool {
	chats := s.load()

	filtered := chats[:0]
	for _, c := range chats {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	removed := len(filtered) < len(chats)

	s.save(filtered)
	return removed
}

// load reads and deserializes the collection. Corruption or storage
// failure is treated as "no data": logged, never raised.
func (s *Store) load() []types.Transcript {
	data, ok, err := s.slot.Load()
	if err != nil {
		fmt.Fprintf(s.warn, "warning: reading chat history: %v\n", err)
		return nil
	}
	if !ok {
		return nil
	}

	var chats []types.Transcript
	if err := json.Unmarshal(data, &chats); err != nil {
		fmt.Fprintf(s.warn, "warning: chat history is unreadable, starting empty: %v\n", err)
		return nil
	}
	return chats
}

// save serializes and writes the whole collection. Failures are logged;
// in-memory state is never rolled back on a failed persist.
func (s *Store) save(chats []types.Transcript) {
	data, err := json.Marshal(chats)
	if err != nil {
		fmt.Fprintf(s.warn, "warning: encoding chat history: %v\n", err)
		return
	}
	if err := s.slot.Save(data); err != nil {
		fmt.Fprintf(s.warn, "warning: writing chat history: %v\n", err)
	}
}

// generateID returns a millisecond-timestamp id, bumped past any existing
// id so that two creations in the same millisecond stay distinct.
func generateID(chats []types.Transcript, now time.Time) int64 {
	id := now.UnixMilli()
	for idExists(chats, id) {
		id++
	}
	return id
}

func idExists(chats []types.Transcript, id int64) bool {
	for _, c := range chats {
		if c.ID == id {
			return true
		}
	}
	return false
}
