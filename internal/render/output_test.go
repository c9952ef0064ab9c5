package render

import (
	"strings"
	"testing"

	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/registry"
)

func TestDocumentsEmpty(t *testing.T) {
	r := New(false)
	if got := r.Documents(nil); got != "No documents found." {
		t.Errorf("Documents(nil) = %q", got)
	}
}

func TestDocumentsPlain(t *testing.T) {
	r := New(false)
	got := r.Documents([]registry.Document{
		{ID: 1, Filename: "a.pdf"},
		{ID: 2, Filename: "b.pdf"},
	})

	if !strings.Contains(got, "1\ta.pdf") || !strings.Contains(got, "2\tb.pdf") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestTranscriptIncludesSources(t *testing.T) {
	r := New(false)
	turns := []domain.Turn{
		domain.NewTurn(domain.RoleUser, "What is X?", nil),
		domain.NewTurn(domain.RoleAssistant, "X is Y.", []domain.Citation{
			{Doc: "a.pdf", Page: 2},
			{Doc: "a.pdf", Page: 1},
		}),
	}

	got := r.Transcript(turns)

	if !strings.Contains(got, "you:") || !strings.Contains(got, "assistant:") {
		t.Errorf("missing role labels:\n%s", got)
	}
	if !strings.Contains(got, "a.pdf (pg. 1, 2)") {
		t.Errorf("missing grouped sources:\n%s", got)
	}
}

func TestStatusPlain(t *testing.T) {
	r := New(false)
	if got := r.Status(true, "deleted"); got != "deleted" {
		t.Errorf("Status = %q", got)
	}
}
