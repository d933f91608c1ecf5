// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conversation drives the two-phase search/verify workflow and
// owns the view state consumed by the presentation layer. Presentation
// renders from the orchestrator's accessors and dispatches intents back;
// it holds no state of its own.
// Implements: prd004-conversation (R1-R5);
//
//	docs/ARCHITECTURE § Conversation Orchestrator.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/claimchat/internal/gateway"
	"github.com/pdiddy/claimchat/internal/transcript"
	"github.com/pdiddy/claimchat/pkg/types"
)

// View names the three mutually exclusive screens.
type View string

const (
	ViewWelcome      View = "welcome"
	ViewConversation View = "conversation"
	ViewHistory      View = "history"
)

// Assistant message contents for the three search outcomes. The wording
// matches the assistant's voice in the product; renderers display these
// verbatim.
const (
	noPapersContent    = "No papers found for this claim. Try rephrasing your query."
	searchErrorContent = "Sorry, I encountered an error processing your request. Please try again."
	defaultChatName    = "New Chat"
)

var (
	// ErrEmptyMessage is returned when the claim text is empty or
	// whitespace-only; no message is appended and no network call issued.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoPapers is returned when verification targets a message that
	// carries no retrieved papers.
	ErrNoPapers = errors.New("message has no papers to verify")

	// ErrNoClaim is returned when no user message precedes the target of
	// a verification request.
	ErrNoClaim = errors.New("no claim precedes this message")
)

// timeNow returns the current time. Declared as a var so tests can
// substitute a deterministic clock.
var timeNow = time.Now

// Searcher is the slice of the gateway the send protocol needs.
type Searcher interface {
	Search(ctx context.Context, claim string, filters types.SearchFilters, limit, offset int) gateway.SearchResult
}

// Verifier is the slice of the gateway the verify protocol needs.
type Verifier interface {
	Verify(ctx context.Context, claim string, papers []types.Paper, maxPapers int) gateway.VerifyResult
}

// Orchestrator mediates between the gateways, the transcript store, and
// the view state machine. It is single-threaded by design: callers invoke
// one operation at a time, mirroring an event loop.
type Orchestrator struct {
	searcher Searcher
	verifier Verifier
	store    *transcript.Store
	cfg      types.ChatConfig
	warn     io.Writer

	view     View
	messages []types.Message
	name     string
	chatID   int64 // 0 while the conversation has never been persisted
	filters  types.SearchFilters
}

// New creates an orchestrator in the welcome view with an empty
// conversation.
func New(searcher Searcher, verifier Verifier, store *transcript.Store, cfg types.ChatConfig, warn io.Writer) *Orchestrator {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	if cfg.MaxVerifyPapers <= 0 {
		cfg.MaxVerifyPapers = 5
	}
	if warn == nil {
		warn = io.Discard
	}
	return &Orchestrator{
		searcher: searcher,
		verifier: verifier,
		store:    store,
		cfg:      cfg,
		warn:     warn,
		view:     ViewWelcome,
		name:     defaultChatName,
	}
}

// View returns the current screen.
func (o *Orchestrator) View() View { return o.view }

// Name returns the active conversation's display name.
func (o *Orchestrator) Name() string { return o.name }

// ActiveID returns the persisted transcript id, or 0 when the
// conversation has not been saved yet.
func (o *Orchestrator) ActiveID() int64 { return o.chatID }

// Messages returns a copy of the conversation so far, in append order.
func (o *Orchestrator) Messages() []types.Message {
	return append([]types.Message(nil), o.messages...)
}

// SetFilters sets the search filters applied to subsequent sends.
func (o *Orchestrator) SetFilters(f types.SearchFilters) { o.filters = f }

// OpenHistory switches to the history view. Permitted from any state.
func (o *Orchestrator) OpenHistory() { o.view = ViewHistory }

// CloseHistory leaves the history view: back to the conversation when the
// active transcript has messages, otherwise to the welcome screen.
func (o *Orchestrator) CloseHistory() {
	if len(o.messages) > 0 {
		o.view = ViewConversation
	} else {
		o.view = ViewWelcome
	}
}

// NewChat discards the in-memory conversation and returns to the welcome
// screen. The persisted copy of the previous conversation, if any, is
// untouched.
func (o *Orchestrator) NewChat() {
	o.messages = nil
	o.chatID = 0
	o.name = defaultChatName
	o.view = ViewWelcome
}

// Rename changes the conversation name and persists it when the
// transcript has been saved.
func (o *Orchestrator) Rename(name string) {
	o.name = name
	if o.chatID != 0 {
		if _, ok := o.store.Rename(o.chatID, name); !ok {
			fmt.Fprintf(o.warn, "warning: rename did not persist: transcript %d not found\n", o.chatID)
		}
	}
}

// Send runs the first phase of the workflow: append the user's claim,
// search for papers, append the assistant's response, persist. The user
// message is appended optimistically before the network call; a search
// failure still produces an assistant message, never an error. The only
// error is ErrEmptyMessage for blank input.
func (o *Orchestrator) Send(ctx context.Context, text string) (types.Message, error) {
	if strings.TrimSpace(text) == "" {
		return types.Message{}, ErrEmptyMessage
	}

	o.append(types.Message{Role: types.RoleUser, Content: text, CreatedAt: timeNow()})

	// A send always lands in the conversation view, also when issued from
	// the history list. The first message of a fresh conversation names it;
	// the derived name must match what Create stores.
	if len(o.messages) == 1 {
		o.name = types.TranscriptName(text)
	}
	o.view = ViewConversation

	reply := o.searchReply(ctx, text)
	o.append(reply)

	o.persist()
	return reply, nil
}

// searchReply invokes the search gateway and shapes the assistant message
// for the three outcomes: papers found, no papers, failure.
func (o *Orchestrator) searchReply(ctx context.Context, claim string) types.Message {
	res := o.searcher.Search(ctx, claim, o.filters, o.cfg.SearchLimit, 0)
	now := timeNow()

	switch {
	case !res.OK:
		fmt.Fprintf(o.warn, "warning: %s\n", res.Err)
		return types.Message{Role: types.RoleAssistant, Content: searchErrorContent, CreatedAt: now}

	case len(res.Sources) == 0:
		return types.Message{Role: types.RoleAssistant, Content: noPapersContent, CreatedAt: now}

	default:
		total := res.Meta.TotalSources
		if total == 0 {
			total = len(res.Sources)
		}
		return types.Message{
			Role:      types.RoleAssistant,
			Content:   fmt.Sprintf("Found %d relevant papers", total),
			CreatedAt: now,
			Metadata: &types.MessageMetadata{
				Papers:     res.Sources,
				SearchMeta: res.Meta,
			},
		}
	}
}

// Verify runs the second phase on demand: score the papers attached to
// the assistant message at index against the claim that produced them
// (the nearest preceding user message). The result is attached to that
// message's metadata for the session; it is not written back to the
// store, so a reload keeps the papers but loses the verification.
func (o *Orchestrator) Verify(ctx context.Context, index int) (*types.Verification, error) {
	if index < 0 || index >= len(o.messages) {
		return nil, fmt.Errorf("no message at index %d", index)
	}
	msg := o.messages[index]
	if !msg.HasPapers() {
		return nil, ErrNoPapers
	}

	claim := ""
	for i := index - 1; i >= 0; i-- {
		if o.messages[i].Role == types.RoleUser {
			claim = o.messages[i].Content
			break
		}
	}
	if claim == "" {
		return nil, ErrNoClaim
	}

	res := o.verifier.Verify(ctx, claim, msg.Metadata.Papers, o.cfg.MaxVerifyPapers)
	if !res.OK {
		return nil, errors.New(res.Err)
	}

	v := res.Verification
	o.messages[index].Metadata.Verification = &v
	return &v, nil
}

// LoadTranscript replaces the in-memory conversation with a persisted
// one and switches to the conversation view.
func (o *Orchestrator) LoadTranscript(id int64) bool {
	chat, ok := o.store.Get(id)
	if !ok {
		return false
	}
	o.messages = chat.Messages
	o.name = chat.Name
	o.chatID = chat.ID
	o.view = ViewConversation
	return true
}

func (o *Orchestrator) append(msg types.Message) {
	o.messages = append(o.messages, msg)
}

// persist saves the conversation at the end of the send protocol: create
// on first save, update afterwards. Persistence is best-effort; the
// in-memory conversation is authoritative for the session.
func (o *Orchestrator) persist() {
	if o.chatID == 0 {
		o.chatID = o.store.Create(o.firstUserContent(), o.messages)
		return
	}

	name := o.name
	if _, ok := o.store.Update(o.chatID, transcript.UpdateFields{Name: &name, Messages: o.messages}); !ok {
		fmt.Fprintf(o.warn, "warning: conversation did not persist: transcript %d not found\n", o.chatID)
	}
}

func (o *Orchestrator) firstUserContent() string {
	for _, m := range o.messages {
		if m.Role == types.RoleUser {
			return m.Content
		}
	}
	return defaultChatName
}
