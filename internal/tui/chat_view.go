package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joss/docchat/internal/domain"
)

// Chat styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	turnTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	thinkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	inputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	focusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Padding(0, 1)

	pickerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
)

// View renders the TUI
func (m ChatModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if !m.ready {
		return fmt.Sprintf("\n  %s Loading session...", m.spinner.View())
	}

	var b strings.Builder

	header := titleStyle.Render("⚡ docchat") + "  " +
		badgeStyle.Render(fmt.Sprintf("%d documents indexed", m.coord.Registry.Len()))
	b.WriteString(header + "\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.renderStatus() + "\n")
	b.WriteString(m.renderInputArea())

	return b.String()
}

func (m ChatModel) renderInputArea() string {
	var b strings.Builder

	switch m.mode {
	case modeDocs:
		b.WriteString(pickerStyle.Width(m.width - 4).Render(m.picker.View()))
		b.WriteString("\n")
		b.WriteString(thinkingStyle.Render("  ↑↓: navigate │ type: filter │ Enter: summarize │ x: delete │ Esc: back"))

	case modeConfirmDelete:
		prompt := fmt.Sprintf("Delete %q? (y/n)", m.confirmDoc.Filename)
		b.WriteString(confirmStyle.Width(m.width - 4).Render(prompt))

	case modeConfirmNewChat:
		b.WriteString(confirmStyle.Width(m.width - 4).Render(
			"Start a new chat? This will clear current history. (y/n)"))

	case modeUpload:
		b.WriteString(focusedInputStyle.Width(m.width - 4).Render("Upload: " + m.upload.View()))
		b.WriteString("\n")
		b.WriteString(thinkingStyle.Render("  Enter: upload matched files │ Esc: cancel"))

	default:
		if m.input.Focused() {
			b.WriteString(focusedInputStyle.Width(m.width - 4).Render(m.input.View()))
		} else {
			b.WriteString(inputBorderStyle.Width(m.width - 4).Render(m.input.View()))
		}
	}

	return b.String()
}

func (m ChatModel) renderStatus() string {
	var parts []string

	if m.coord.Loading() {
		parts = append(parts, m.spinner.View()+" Thinking...")
	}
	if m.coord.Uploading() {
		parts = append(parts, m.spinner.View()+" "+m.coord.Status())
	} else if status := m.coord.Status(); status != "" {
		parts = append(parts, status)
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}

	parts = append(parts, "Enter: send │ Ctrl+D: documents │ Ctrl+U: upload │ Ctrl+N: new chat │ Esc: quit")

	return statusBarStyle.Width(m.width).Render(strings.Join(parts, " │ "))
}

// renderTranscript builds the viewport content from the conversation log.
func (m ChatModel) renderTranscript() string {
	turns := m.coord.Log.Turns()
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}
	wrap := turnTextStyle.Width(width)

	if len(turns) == 0 {
		empty := fmt.Sprintf("What can I help you find?\n\nAsk questions about your %d uploaded documents.",
			m.coord.Registry.Len())
		return thinkingStyle.Render(empty)
	}

	var b strings.Builder
	for _, t := range turns {
		if t.Role == domain.RoleUser {
			b.WriteString(userLabelStyle.Render("👤 you") + "\n")
		} else {
			b.WriteString(assistantLabelStyle.Render("✨ assistant") + "\n")
		}
		b.WriteString(wrap.Render(t.Text) + "\n")

		if groups := domain.GroupCitations(t.Citations); len(groups) > 0 {
			b.WriteString(sourceStyle.Render("📚 "+renderSourcePills(groups)) + "\n")
		}
		b.WriteString("\n")
	}

	if m.coord.Loading() {
		b.WriteString(thinkingStyle.Render("✨ Thinking...") + "\n")
	}

	return b.String()
}

func renderSourcePills(groups []domain.CitationGroup) string {
	pills := make([]string, 0, len(groups))
	for _, g := range groups {
		pages := make([]string, len(g.Pages))
		for i, p := range g.Pages {
			pages[i] = fmt.Sprintf("%d", p)
		}
		pills = append(pills, fmt.Sprintf("%s (pg. %s)", g.Doc, strings.Join(pages, ", ")))
	}
	return strings.Join(pills, "  ")
}
