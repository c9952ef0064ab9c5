package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joss/docchat/internal/coordinator"
	"github.com/joss/docchat/internal/domain"
)

// Messages delivered back to the model when an operation resolves. State
// is already mutated by the coordinator at that point; the messages only
// trigger a re-render.
type (
	askDoneMsg       struct{ turn domain.Turn }
	summarizeDoneMsg struct{ turn domain.Turn }
	uploadDoneMsg    struct{ err error }
	refreshDoneMsg   struct{ err error }
	deleteDoneMsg    struct {
		name string
		err  error
	}
	statusClearMsg struct{}
)

func resolveAsk(c *coordinator.Coordinator, t *coordinator.AskTicket) tea.Cmd {
	return func() tea.Msg {
		return askDoneMsg{turn: c.ResolveAsk(context.Background(), t)}
	}
}

func resolveSummarize(c *coordinator.Coordinator, t *coordinator.SummarizeTicket) tea.Cmd {
	return func() tea.Msg {
		return summarizeDoneMsg{turn: c.ResolveSummarize(context.Background(), t)}
	}
}

func resolveUpload(c *coordinator.Coordinator, t *coordinator.UploadTicket) tea.Cmd {
	return func() tea.Msg {
		return uploadDoneMsg{err: c.ResolveUpload(context.Background(), t)}
	}
}

func refreshDocs(c *coordinator.Coordinator) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: c.RefreshDocuments(context.Background())}
	}
}

func deleteDoc(c *coordinator.Coordinator, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{name: name, err: c.Delete(context.Background(), id, name)}
	}
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(coordinator.StatusClearDelay, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}
