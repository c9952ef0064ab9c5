package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/docchat/internal/api"
	"github.com/joss/docchat/internal/coordinator"
	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/registry"
)

// inputMode represents the current input mode
type inputMode int

const (
	modeChat inputMode = iota
	modeDocs
	modeConfirmDelete
	modeConfirmNewChat
	modeUpload
)

// ChatModel is the main TUI model for the document chat
type ChatModel struct {
	coord *coordinator.Coordinator

	ready    bool
	quitting bool
	width    int
	height   int

	viewport viewport.Model
	input    textarea.Model
	upload   textinput.Model
	spinner  spinner.Model
	picker   *DocPicker
	mode     inputMode

	// Document pending delete confirmation
	confirmDoc registry.Document

	// Transient local notice (validation errors, busy rejections)
	notice string
}

// NewChatModel creates the chat TUI around a coordinator whose session has
// already been restored.
func NewChatModel(coord *coordinator.Coordinator) ChatModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textarea.New()
	ti.Placeholder = "Ask a question... (Enter to send)"
	ti.CharLimit = 4000
	ti.SetWidth(80)
	ti.SetHeight(3)
	ti.Focus()

	up := textinput.New()
	up.Placeholder = "glob pattern, e.g. docs/**/*.pdf"
	up.CharLimit = 500

	return ChatModel{
		coord:   coord,
		spinner: s,
		input:   ti,
		upload:  up,
	}
}

// Init starts the spinner and the initial document refresh.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, refreshDocs(m.coord))
}

// Update handles messages
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Operation resolutions land whatever the input mode is; the state is
	// already mutated, so just re-render and handle affordances.
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case askDoneMsg, summarizeDoneMsg:
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case uploadDoneMsg:
		if msg.err == nil {
			// Status clears on its own after a successful upload.
			return m, clearStatusAfter()
		}
		return m, nil

	case statusClearMsg:
		m.coord.ClearStatus()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.mode {
	case modeDocs:
		return m.updateDocs(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeConfirmNewChat:
		return m.updateConfirmNewChat(msg)
	case modeUpload:
		return m.updateUpload(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case refreshDoneMsg:
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.notice = "Failed to delete " + msg.name + "."
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChatModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		return m.handleEnterKey()

	case "alt+enter", "ctrl+j":
		m.input.SetValue(m.input.Value() + "\n")
		return m, nil

	case "ctrl+n":
		m.mode = modeConfirmNewChat
		return m, nil

	case "ctrl+d":
		m.mode = modeDocs
		if m.picker == nil {
			m.picker = NewDocPicker(m.coord.Registry.Documents(), m.width-4, 10)
		} else {
			m.picker.SetDocs(m.coord.Registry.Documents())
		}
		return m, refreshDocs(m.coord)

	case "ctrl+u":
		m.mode = modeUpload
		m.upload.SetValue("")
		m.upload.Focus()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) handleEnterKey() (tea.Model, tea.Cmd) {
	ticket, err := m.coord.BeginAsk(m.input.Value())
	if err != nil {
		if domain.IsBusy(err) {
			m.notice = "Still thinking — wait for the current answer."
		}
		// A blank question is ignored, exactly like pressing send on an
		// empty input in the reference UI.
		return m, nil
	}

	m.input.SetValue("")
	m.notice = ""
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, resolveAsk(m.coord, ticket))
}

func (m ChatModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	statusHeight := 1
	inputHeight := 5
	vpWidth := msg.Width
	vpHeight := msg.Height - headerHeight - statusHeight - inputHeight

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.SetContent(m.renderTranscript())
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.viewport.SetContent(m.renderTranscript())
	}

	m.input.SetWidth(msg.Width - 4)
	m.upload.Width = msg.Width - 8

	if m.picker != nil {
		m.picker.SetSize(m.width-4, 10)
	}

	return m, nil
}

// updateDocs handles input while the document picker is open
func (m ChatModel) updateDocs(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshDoneMsg:
		if m.picker != nil {
			m.picker.SetDocs(m.coord.Registry.Documents())
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.notice = "Failed to delete " + msg.name + "."
		} else if m.picker != nil {
			m.picker.SetDocs(m.coord.Registry.Documents())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = modeChat
			return m, nil

		case tea.KeyEnter:
			// Summarize the highlighted document
			doc, ok := m.picker.Selected()
			if !ok {
				m.mode = modeChat
				return m, nil
			}
			ticket, err := m.coord.BeginSummarize(doc.ID)
			m.mode = modeChat
			if err != nil {
				if domain.IsBusy(err) {
					m.notice = "Still thinking — wait for the current answer."
				}
				return m, nil
			}
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spinner.Tick, resolveSummarize(m.coord, ticket))

		case tea.KeyBackspace:
			m.picker.Backspace()
			return m, nil

		case tea.KeyRunes:
			if string(msg.Runes) == "x" {
				// Delete needs explicit confirmation first
				if doc, ok := m.picker.Selected(); ok {
					m.confirmDoc = doc
					m.mode = modeConfirmDelete
				}
				return m, nil
			}
			for _, r := range msg.Runes {
				m.picker.TypeRune(r)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m ChatModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			doc := m.confirmDoc
			m.confirmDoc = registry.Document{}
			m.mode = modeDocs
			return m, deleteDoc(m.coord, doc.ID, doc.Filename)
		case "n", "N", "esc":
			m.confirmDoc = registry.Document{}
			m.mode = modeDocs
			return m, nil
		}
	}
	return m, nil
}

func (m ChatModel) updateConfirmNewChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.mode = modeChat
			if err := m.coord.NewSession(context.Background()); err != nil {
				m.notice = "Failed to clear the session."
			}
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "n", "N", "esc":
			m.mode = modeChat
			return m, nil
		}
	}
	return m, nil
}

func (m ChatModel) updateUpload(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = modeChat
			return m, nil

		case tea.KeyEnter:
			pattern := strings.TrimSpace(m.upload.Value())
			m.mode = modeChat
			if pattern == "" {
				return m, nil
			}
			files, err := api.CollectFiles(pattern)
			if err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.coord.SelectFiles(files)
			ticket, err := m.coord.BeginUpload()
			if err != nil {
				m.notice = "Please select a PDF first."
				return m, nil
			}
			m.notice = ""
			return m, tea.Batch(m.spinner.Tick, resolveUpload(m.coord, ticket))
		}
	}

	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}
