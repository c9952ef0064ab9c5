package coordinator

import (
	"context"
	"fmt"
	"strings"

	"github.com/joss/docchat/internal/api"
	"github.com/joss/docchat/internal/domain"
)

// AskTicket captures an issued question: the text and the history window
// as they were at issuance time.
type AskTicket struct {
	Question string
	History  []domain.HistoryEntry
	UserTurn domain.Turn
}

// BeginAsk validates the question, appends the user turn and captures the
// history window. The user turn is never rolled back, whatever happens to
// the remote call.
func (c *Coordinator) BeginAsk(question string) (*AskTicket, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrBlankQuestion
	}

	c.mu.Lock()
	if c.opts.SingleFlight && c.loading {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	c.loading = true
	c.mu.Unlock()

	// History covers the turns preceding this question, so capture it
	// before the append. Citations are not echoed back to the server.
	history := c.Log.History(c.opts.HistoryWindow)
	userTurn := c.Log.Append(domain.RoleUser, question, nil)
	c.persist(context.Background())

	c.logger.Info("ask_issued", map[string]interface{}{"history": len(history)})
	return &AskTicket{Question: question, History: history, UserTurn: userTurn}, nil
}

// ResolveAsk performs the remote call and appends exactly one assistant
// turn: the answer with its citations on success, the fixed failure text
// otherwise. Appends go to whatever position is current at resolution
// time; overlapping asks interleave by completion order.
func (c *Coordinator) ResolveAsk(ctx context.Context, t *AskTicket) domain.Turn {
	ans, err := c.remote.Ask(ctx, t.Question, t.History)

	var turn domain.Turn
	if err != nil {
		c.logger.Warn("ask_failed", nil, err)
		turn = c.Log.Append(domain.RoleAssistant, TextAskFailed, nil)
	} else {
		text := ans.Answer
		if text == "" {
			text = TextNoAnswer
		}
		turn = c.Log.Append(domain.RoleAssistant, text, ans.Sources)
	}

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	c.persist(ctx)
	return turn
}

// SummarizeTicket captures an issued summary request and the identity of
// its placeholder turn.
type SummarizeTicket struct {
	DocID         int64
	PlaceholderID string
}

// BeginSummarize appends the in-progress placeholder and records its turn
// ID so the resolution can replace it no matter what lands in between.
func (c *Coordinator) BeginSummarize(id int64) (*SummarizeTicket, error) {
	c.mu.Lock()
	if c.opts.SingleFlight && c.loading {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	c.loading = true
	c.mu.Unlock()

	placeholder := c.Log.Append(domain.RoleAssistant, TextSummaryPending, nil)
	c.persist(context.Background())

	c.logger.Info("summarize_issued", map[string]interface{}{"id": id})
	return &SummarizeTicket{DocID: id, PlaceholderID: placeholder.ID}, nil
}

// ResolveSummarize replaces the placeholder by its turn ID on success. On
// failure the placeholder stays and a separate failure turn is appended;
// that asymmetry is part of the contract. If the placeholder vanished
// (session cleared mid-flight) the summary is appended instead.
func (c *Coordinator) ResolveSummarize(ctx context.Context, t *SummarizeTicket) domain.Turn {
	summary, err := c.remote.Summarize(ctx, t.DocID)

	var turn domain.Turn
	if err != nil {
		c.logger.Warn("summarize_failed", map[string]interface{}{"id": t.DocID}, err)
		turn = c.Log.Append(domain.RoleAssistant, TextSummaryFailed, nil)
	} else {
		text := summaryPrefix + summary
		if replaceErr := c.Log.Replace(t.PlaceholderID, text); replaceErr != nil {
			c.logger.Warn("summarize_placeholder_gone", map[string]interface{}{"id": t.DocID}, replaceErr)
			turn = c.Log.Append(domain.RoleAssistant, text, nil)
		} else {
			turn = domain.Turn{ID: t.PlaceholderID, Role: domain.RoleAssistant, Text: text}
		}
	}

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	c.persist(ctx)
	return turn
}

// UploadTicket captures the files an upload was issued with.
type UploadTicket struct {
	Files []api.File
}

// BeginUpload validates the selection and marks the upload in flight.
// An empty selection is rejected locally; no remote call is made.
func (c *Coordinator) BeginUpload() (*UploadTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.selected) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	c.uploading = true
	c.status = StatusUploading

	files := make([]api.File, len(c.selected))
	copy(files, c.selected)
	return &UploadTicket{Files: files}, nil
}

// ResolveUpload performs the batched upload. Success clears the selection,
// refreshes the document mirror and reports the server's elapsed time in
// the status; failure keeps the selection so the user can retry. The
// uploading flag is always released.
func (c *Coordinator) ResolveUpload(ctx context.Context, t *UploadTicket) error {
	res, err := c.remote.Upload(ctx, t.Files)

	c.mu.Lock()
	c.uploading = false
	if err != nil {
		c.status = StatusUploadFailed
	} else {
		c.selected = nil
		if res.TimeTaken > 0 {
			c.status = fmt.Sprintf("Done! (%.1fs)", res.TimeTaken)
		} else {
			c.status = "Done!"
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("upload_failed", map[string]interface{}{"files": len(t.Files)}, err)
		return fmt.Errorf("upload: %w", err)
	}

	c.logger.Info("upload_done", map[string]interface{}{
		"files":  len(t.Files),
		"chunks": res.Chunks,
	})

	// The upload changed the server's set; resync. A refresh failure here
	// leaves the mirror stale but does not fail the upload.
	if refreshErr := c.RefreshDocuments(ctx); refreshErr != nil {
		c.logger.Warn("post_upload_refresh_failed", nil, refreshErr)
	}
	return nil
}

// NewSession empties the in-memory log and removes the persisted entry.
// In-flight resolutions will still land on the fresh log; see the package
// comment.
func (c *Coordinator) NewSession(ctx context.Context) error {
	c.Log.Reset()
	c.ClearStatus()
	if err := c.store.Clear(ctx, c.opts.SessionKey); err != nil {
		c.logger.Warn("session_clear_failed", nil, err)
		return fmt.Errorf("clear session: %w", err)
	}
	c.logger.Info("session_cleared", nil)
	return nil
}
