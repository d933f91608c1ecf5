// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/claimchat/pkg/types"
)

// fakeClock drives timeNow deterministically. Each call advances the
// clock by step so consecutive mutations get distinct timestamps.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newTestStore(t *testing.T) (*Store, *MemorySlot, *bytes.Buffer) {
	t.Helper()
	clock := &fakeClock{
		now:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		step: time.Second,
	}
	orig := timeNow
	timeNow = clock.Now
	t.Cleanup(func() { timeNow = orig })

	slot := &MemorySlot{}
	var warnings bytes.Buffer
	return NewStore(slot, &warnings), slot, &warnings
}

func userMsg(content string) types.Message {
	return types.Message{Role: types.RoleUser, Content: content, CreatedAt: time.Now()}
}

// --- naming rule ---

func TestTranscriptName(t *testing.T) {
	long := strings.Repeat("x", 60)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short message unchanged", "hello", "hello"},
		{"exactly 50 chars unchanged", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"51 chars truncated", strings.Repeat("b", 51), strings.Repeat("b", 50) + "..."},
		{"60 chars yields 53-char name", long, long[:50] + "..."},
		{"50 multibyte runes unchanged", strings.Repeat("é", 50), strings.Repeat("é", 50)},
		{"multibyte rune at the cut kept whole", strings.Repeat("a", 49) + "é…", strings.Repeat("a", 49) + "é..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types.TranscriptName(tt.message)
			if got != tt.want {
				t.Errorf("TranscriptName(%q) = %q, want %q", tt.message, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("TranscriptName(%q) = %q is not valid UTF-8", tt.message, got)
			}
		})
	}
}

func TestCreateDerivesName(t *testing.T) {
	store, _, _ := newTestStore(t)
	long := strings.Repeat("y", 60)

	id := store.Create(long, []types.Message{userMsg(long)})

	chat, ok := store.Get(id)
	if !ok {
		t.Fatal("Get after Create returned not-found")
	}
	if len(chat.Name) != 53 {
		t.Errorf("len(Name) = %d, want 53", len(chat.Name))
	}
	if !strings.HasSuffix(chat.Name, "...") {
		t.Errorf("Name %q should end in ellipsis", chat.Name)
	}
}

func TestCreateMultibyteNamePersistsIntact(t *testing.T) {
	// A name cut right at a multibyte character must come back from the
	// serialized slot unchanged, not rewritten to replacement runes.
	store, slot, _ := newTestStore(t)
	claim := strings.Repeat("a", 49) + "é… plus text well past the cutoff"

	id := store.Create(claim, []types.Message{userMsg(claim)})

	reread := NewStore(slot, nil)
	chat, ok := reread.Get(id)
	if !ok {
		t.Fatal("Get after Create returned not-found")
	}
	if !utf8.ValidString(chat.Name) {
		t.Fatalf("persisted name is not valid UTF-8: %q", chat.Name)
	}
	if want := strings.Repeat("a", 49) + "é..."; chat.Name != want {
		t.Errorf("persisted name = %q, want %q", chat.Name, want)
	}
}

// --- create / get round trip ---

func TestCreateGetRoundTrip(t *testing.T) {
	store, _, _ := newTestStore(t)
	msg := userMsg("hello")

	id := store.Create("hello", []types.Message{msg})

	chat, ok := store.Get(id)
	if !ok {
		t.Fatal("Get returned not-found for freshly created transcript")
	}
	if len(chat.Messages) != 1 || chat.Messages[0].Content != "hello" {
		t.Errorf("Messages = %+v, want the single created message", chat.Messages)
	}
	if chat.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1", chat.MessageCount)
	}
	if !chat.CreatedAt.Equal(chat.LastUpdated) {
		t.Errorf("CreatedAt %v != LastUpdated %v on creation", chat.CreatedAt, chat.LastUpdated)
	}
}

func TestGetUnknownID(t *testing.T) {
	store, _, _ := newTestStore(t)
	if _, ok := store.Get(42); ok {
		t.Error("Get(42) on empty store should be not-found")
	}
}

// --- listing order ---

func TestListSortedByLastUpdatedDescending(t *testing.T) {
	store, _, _ := newTestStore(t)

	idA := store.Create("first claim", []types.Message{userMsg("first claim")})
	idB := store.Create("second claim", []types.Message{userMsg("second claim")})

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}
	if list[0].ID != idB {
		t.Errorf("newest transcript should list first, got id %d", list[0].ID)
	}

	// Updating A moves it ahead of B.
	if _, ok := store.Rename(idA, "renamed"); !ok {
		t.Fatal("Rename(idA) failed")
	}
	list = store.List()
	if list[0].ID != idA {
		t.Errorf("updated transcript should list first, got id %d", list[0].ID)
	}
}

func TestListEmptyStore(t *testing.T) {
	store, _, _ := newTestStore(t)
	if got := store.List(); len(got) != 0 {
		t.Errorf("List() on empty store = %v, want empty", got)
	}
}

// --- update ---

func TestUpdateBumpsLastUpdatedOnly(t *testing.T) {
	store, _, _ := newTestStore(t)
	id := store.Create("claim", []types.Message{userMsg("claim")})

	before, _ := store.Get(id)

	name := "X"
	updated, ok := store.Update(id, UpdateFields{Name: &name})
	if !ok {
		t.Fatal("Update returned not-found")
	}
	if updated.Name != "X" {
		t.Errorf("Name = %q, want X", updated.Name)
	}
	if !updated.LastUpdated.After(before.LastUpdated) {
		t.Errorf("LastUpdated %v should be strictly after %v", updated.LastUpdated, before.LastUpdated)
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("CreatedAt changed from %v to %v", before.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateBumpsEvenWithStalledClock(t *testing.T) {
	store, _, _ := newTestStore(t)

	// Freeze the clock after store construction.
	frozen := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return frozen }

	id := store.Create("claim", []types.Message{userMsg("claim")})
	before, _ := store.Get(id)

	updated, ok := store.Update(id, UpdateFields{Messages: []types.Message{userMsg("a"), userMsg("b")}})
	if !ok {
		t.Fatal("Update returned not-found")
	}
	if !updated.LastUpdated.After(before.LastUpdated) {
		t.Errorf("LastUpdated must strictly increase even when the clock stalls")
	}
	if updated.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", updated.MessageCount)
	}
}

func TestUpdateUnknownIDHasNoSideEffects(t *testing.T) {
	store, slot, _ := newTestStore(t)
	store.Create("claim", []types.Message{userMsg("claim")})
	snapshot := append([]byte(nil), slot.data...)

	name := "ghost"
	if _, ok := store.Update(999, UpdateFields{Name: &name}); ok {
		t.Fatal("Update(999) should be not-found")
	}
	if !bytes.Equal(slot.data, snapshot) {
		t.Error("Update on unknown id must not rewrite the collection")
	}
}

// --- delete ---

func TestDeleteIsFinal(t *testing.T) {
	store, _, _ := newTestStore(t)
	id := store.Create("claim", []types.Message{userMsg("claim")})

	if !store.Delete(id) {
		t.Fatal("Delete(existing) = false, want true")
	}
	if _, ok := store.Get(id); ok {
		t.Error("Get after Delete should be not-found")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	store, _, _ := newTestStore(t)
	id := store.Create("claim", []types.Message{userMsg("claim")})

	if store.Delete(id + 1) {
		t.Error("Delete(unknown) = true, want false")
	}
	if len(store.List()) != 1 {
		t.Error("Delete(unknown) must not alter the collection")
	}
}

func TestDeleteAllLeavesEmptyList(t *testing.T) {
	store, _, _ := newTestStore(t)
	idA := store.Create("a", []types.Message{userMsg("a")})
	idB := store.Create("b", []types.Message{userMsg("b")})

	store.Delete(idA)
	store.Delete(idB)

	if got := store.List(); len(got) != 0 {
		t.Errorf("List() after deleting everything = %v, want empty", got)
	}
}

// --- id generation ---

func TestCreateIDsDistinctWithinSameMillisecond(t *testing.T) {
	store, _, _ := newTestStore(t)

	frozen := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return frozen }

	idA := store.Create("a", []types.Message{userMsg("a")})
	idB := store.Create("b", []types.Message{userMsg("b")})

	if idA == idB {
		t.Errorf("two creations in the same millisecond share id %d", idA)
	}
}

// --- failure semantics ---

func TestCorruptCollectionTreatedAsEmpty(t *testing.T) {
	store, slot, warnings := newTestStore(t)
	slot.data = []byte("{not json")
	slot.set = true

	if got := store.List(); len(got) != 0 {
		t.Errorf("List() over corrupt blob = %v, want empty", got)
	}
	if !strings.Contains(warnings.String(), "unreadable") {
		t.Errorf("corruption should be logged, got %q", warnings.String())
	}
}

func TestLoadFailureTreatedAsEmpty(t *testing.T) {
	store, slot, warnings := newTestStore(t)
	slot.FailLoad = errors.New("quota exceeded")

	if got := store.List(); len(got) != 0 {
		t.Errorf("List() with failing slot = %v, want empty", got)
	}
	if !strings.Contains(warnings.String(), "quota exceeded") {
		t.Errorf("load failure should be logged, got %q", warnings.String())
	}
}

func TestSaveFailureDoesNotPropagate(t *testing.T) {
	store, slot, warnings := newTestStore(t)
	slot.FailSave = errors.New("disk full")

	// Create must not panic or error out even though nothing persists.
	store.Create("claim", []types.Message{userMsg("claim")})

	if !strings.Contains(warnings.String(), "disk full") {
		t.Errorf("save failure should be logged, got %q", warnings.String())
	}
}

// --- export ---

func TestExportJSONRoundTrip(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.Create("exported claim", []types.Message{userMsg("exported claim")})

	var buf bytes.Buffer
	if err := store.ExportJSON(&buf); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "exported claim") {
		t.Errorf("export missing transcript content: %s", buf.String())
	}
}

func TestExportYAMLEmptyStore(t *testing.T) {
	store, _, _ := newTestStore(t)

	var buf bytes.Buffer
	if err := store.ExportYAML(&buf); err != nil {
		t.Fatalf("ExportYAML on empty store: %v", err)
	}
}
