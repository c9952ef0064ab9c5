// Package coordinator orchestrates the remote operations and reconciles
// local state with their outcomes.
//
// Operations are two-phase. Begin* runs on the caller's goroutine and
// applies every issuance-time mutation (validation, optimistic appends,
// flag changes), returning a ticket that captures what the operation was
// issued against. Resolve* performs the remote call and may run
// concurrently with anything else; it only ever appends or replaces by
// turn ID, so interleaved completions cannot corrupt unrelated turns.
//
// A resolution that arrives after the session was cleared still applies to
// whatever log exists at that moment. That matches the reference behavior
// and is accepted deliberately; there is no cancellation.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joss/docchat/internal/api"
	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/logging"
	"github.com/joss/docchat/internal/registry"
)

// Fixed user-visible texts. The exact strings are part of the observable
// contract: failed answers and summaries are recorded in the log with
// these texts, not with raw error messages.
const (
	TextNoAnswer       = "No answer returned."
	TextAskFailed      = "Error connecting to server."
	TextSummaryPending = "Generating summary... ⏳"
	TextSummaryFailed  = "Failed to generate summary."

	StatusUploading    = "Uploading..."
	StatusUploadFailed = "Failed to upload."
)

const summaryPrefix = "📝 **Summary:**\n\n"

// StatusClearDelay is how long an upload status lingers before the UI
// clears it. A display affordance, not a correctness requirement.
const StatusClearDelay = 5 * time.Second

// Remote is the slice of the service client the coordinator uses.
type Remote interface {
	ListDocuments(ctx context.Context) ([]registry.Document, error)
	Upload(ctx context.Context, files []api.File) (api.UploadResult, error)
	DeleteDocument(ctx context.Context, id int64) error
	Ask(ctx context.Context, question string, history []domain.HistoryEntry) (api.Answer, error)
	Summarize(ctx context.Context, id int64) (string, error)
}

// SessionStore is the slice of the persistence store the coordinator uses.
type SessionStore interface {
	Load(ctx context.Context, key string) ([]domain.Turn, error)
	Save(ctx context.Context, key string, turns []domain.Turn) error
	Clear(ctx context.Context, key string) error
}

// Options configures a Coordinator.
type Options struct {
	// SessionKey selects the persisted conversation slot.
	SessionKey string

	// HistoryWindow is the number of prior turns sent with each question.
	HistoryWindow int

	// SingleFlight rejects a second ask/summarize while one is in flight.
	// Off by default, matching the reference behavior of allowing
	// overlapping questions.
	SingleFlight bool
}

// Coordinator owns all mutable client state: the conversation log, the
// document mirror and the advisory UI flags. No package-level state.
type Coordinator struct {
	Log      *domain.ConversationLog
	Registry *registry.Registry

	remote Remote
	store  SessionStore
	opts   Options
	logger *logging.Logger

	// Advisory UI state. The flags are not locks: nothing here prevents a
	// second operation from being issued while one is in flight.
	mu        sync.Mutex
	loading   bool
	uploading bool
	status    string
	selected  []api.File
}

// New creates a coordinator around a remote client and a session store.
func New(remote Remote, store SessionStore, opts Options) *Coordinator {
	if opts.SessionKey == "" {
		opts.SessionKey = "default"
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 6
	}
	return &Coordinator{
		Log:      domain.NewConversationLog(),
		Registry: registry.New(),
		remote:   remote,
		store:    store,
		opts:     opts,
		logger:   logging.New("coordinator").WithSession(opts.SessionKey),
	}
}

// Restore loads the persisted session into the log. Called once at
// startup; a load failure starts an empty session.
func (c *Coordinator) Restore(ctx context.Context) {
	turns, err := c.store.Load(ctx, c.opts.SessionKey)
	if err != nil {
		c.logger.Warn("session_load_failed", nil, err)
		return
	}
	c.Log.Restore(turns)
}

// persist writes the current log. Save failures are logged and swallowed:
// losing durability must never break the conversation.
func (c *Coordinator) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.opts.SessionKey, c.Log.Turns()); err != nil {
		c.logger.Warn("session_save_failed", nil, err)
	}
}

// Loading reports whether a question or summary is in flight.
func (c *Coordinator) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Uploading reports whether an upload is in flight.
func (c *Coordinator) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

// Status returns the current status message.
func (c *Coordinator) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ClearStatus erases the status message. The UI schedules this
// StatusClearDelay after a successful upload.
func (c *Coordinator) ClearStatus() {
	c.mu.Lock()
	c.status = ""
	c.mu.Unlock()
}

// SelectFiles replaces the selected-files buffer and resets any stale
// upload status.
func (c *Coordinator) SelectFiles(files []api.File) {
	c.mu.Lock()
	c.selected = files
	c.status = ""
	c.mu.Unlock()
}

// SelectedFiles returns the current selection.
func (c *Coordinator) SelectedFiles() []api.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// RefreshDocuments replaces the document mirror with the server's list.
// A failed refresh leaves the previous set untouched and is never retried
// automatically; the next triggering event retries naturally.
func (c *Coordinator) RefreshDocuments(ctx context.Context) error {
	docs, err := c.remote.ListDocuments(ctx)
	if err != nil {
		c.logger.Warn("refresh_failed", nil, err)
		return fmt.Errorf("refresh documents: %w", err)
	}
	c.Registry.Replace(docs)
	c.logger.Debug("refresh_done", map[string]interface{}{"documents": len(docs)})
	return nil
}

// Delete removes one document after the server confirms. The caller is
// responsible for user confirmation before invoking this. On failure the
// local set is untouched and the document stays visible and retryable.
func (c *Coordinator) Delete(ctx context.Context, id int64, name string) error {
	if err := c.remote.DeleteDocument(ctx, id); err != nil {
		c.logger.Warn("delete_failed", map[string]interface{}{"id": id, "name": name}, err)
		return fmt.Errorf("delete %q: %w", name, err)
	}
	c.Registry.Remove(id)
	c.logger.Info("delete_done", map[string]interface{}{"id": id, "name": name})
	return nil
}
