// Package render provides output formatting for the non-interactive commands.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/registry"
)

// Renderer handles output formatting.
type Renderer struct {
	pretty bool
}

// New creates a new renderer.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Documents formats the document list.
func (r *Renderer) Documents(docs []registry.Document) string {
	if len(docs) == 0 {
		return "No documents found."
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Indexed Documents\n"))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
	}

	for _, d := range docs {
		if r.pretty {
			sb.WriteString(fmt.Sprintf("  %s %s %s\n",
				color.GreenString("📄"), d.Filename, color.HiBlackString("(id %d)", d.ID)))
		} else {
			sb.WriteString(fmt.Sprintf("%d\t%s\n", d.ID, d.Filename))
		}
	}

	return sb.String()
}

// Transcript formats a conversation log.
func (r *Renderer) Transcript(turns []domain.Turn) string {
	if len(turns) == 0 {
		return "No conversation yet."
	}

	var sb strings.Builder
	for _, t := range turns {
		r.formatTurn(&sb, t)
	}
	return sb.String()
}

func (r *Renderer) formatTurn(sb *strings.Builder, t domain.Turn) {
	label := "you"
	if t.Role == domain.RoleAssistant {
		label = "assistant"
	}

	if r.pretty {
		c := color.New(color.FgMagenta, color.Bold)
		if t.Role == domain.RoleAssistant {
			c = color.New(color.FgCyan, color.Bold)
		}
		sb.WriteString(c.Sprintf("%s", label) + "\n")
	} else {
		sb.WriteString(label + ":\n")
	}

	sb.WriteString(t.Text + "\n")

	if groups := domain.GroupCitations(t.Citations); len(groups) > 0 {
		sb.WriteString(r.Sources(groups) + "\n")
	}
	sb.WriteString("\n")
}

// Sources formats citation groups as one "sources" line.
func (r *Renderer) Sources(groups []domain.CitationGroup) string {
	pills := make([]string, 0, len(groups))
	for _, g := range groups {
		pages := make([]string, len(g.Pages))
		for i, p := range g.Pages {
			pages[i] = fmt.Sprintf("%d", p)
		}
		pill := fmt.Sprintf("%s (pg. %s)", g.Doc, strings.Join(pages, ", "))
		if r.pretty {
			pill = color.HiBlackString(pill)
		}
		pills = append(pills, pill)
	}

	label := "📚 Sources:"
	if r.pretty {
		label = color.YellowString(label)
	}
	return label + " " + strings.Join(pills, "  ")
}

// Status formats an operation status line.
func (r *Renderer) Status(ok bool, msg string) string {
	if !r.pretty {
		return msg
	}
	if ok {
		return color.GreenString("✓ ") + msg
	}
	return color.RedString("✗ ") + msg
}
