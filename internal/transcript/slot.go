// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcript persists chat transcripts as a single serialized
// collection held in one key-value slot, read and written wholesale.
// Implements: prd001-transcript-store (R1-R6);
//
//	docs/ARCHITECTURE § Transcript Store.
package transcript

// Slot is a synchronous key-value slot holding one serialized blob.
// There is no partial-key access: every operation loads or replaces the
// whole collection.
type Slot interface {
	// Load returns the stored blob. The second return is false when
	// nothing has been stored yet.
	Load() ([]byte, bool, error)

	// Save replaces the stored blob.
	Save(data []byte) error
}

// MemorySlot is an in-memory Slot for tests and ephemeral sessions.
type MemorySlot struct {
	data []byte
	set  bool

	// FailLoad and FailSave inject storage errors in tests.
	FailLoad error
	FailSave error
}

// Load returns the stored blob.
func (m *MemorySlot) Load() ([]byte, bool, error) {
	if m.FailLoad != nil {
		return nil, false, m.FailLoad
	}
	return m.data, m.set, nil
}

// Save replaces the stored blob.
func (m *MemorySlot) Save(data []byte) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.data = append([]byte(nil), data...)
	m.set = true
	return nil
}
