// Package tui provides the Bubble Tea interactive chat interface.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/joss/docchat/internal/registry"
	docstrings "github.com/joss/docchat/internal/strings"
)

// docItem implements list.Item for the document picker
type docItem struct {
	doc registry.Document
}

func (i docItem) Title() string {
	return "📄 " + docstrings.Truncate(i.doc.Filename, 60)
}

func (i docItem) Description() string { return fmt.Sprintf("id %d", i.doc.ID) }
func (i docItem) FilterValue() string { return i.doc.Filename }

// docItems is a slice of docItem that implements fuzzy.Source
type docItems []docItem

func (d docItems) String(i int) string { return d[i].doc.Filename }
func (d docItems) Len() int            { return len(d) }

// DocPicker shows the document mirror and drives summarize/delete
type DocPicker struct {
	list   list.Model
	items  docItems
	filter string
	width  int
	height int
}

// NewDocPicker creates a picker over the current document snapshot
func NewDocPicker(docs []registry.Document, width, height int) *DocPicker {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)

	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("205")).
		BorderForeground(lipgloss.Color("205"))

	l := list.New([]list.Item{}, delegate, width, height)
	l.Title = "Knowledge Base"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	p := &DocPicker{
		list:   l,
		width:  width,
		height: height,
	}
	p.SetDocs(docs)
	return p
}

// SetDocs replaces the picker contents, keeping any active filter.
func (p *DocPicker) SetDocs(docs []registry.Document) {
	items := make(docItems, 0, len(docs))
	for _, d := range docs {
		items = append(items, docItem{doc: d})
	}
	p.items = items
	p.applyFilter()
}

// TypeRune extends the fuzzy filter.
func (p *DocPicker) TypeRune(r rune) {
	p.filter += string(r)
	p.applyFilter()
}

// Backspace shortens the fuzzy filter.
func (p *DocPicker) Backspace() {
	if p.filter != "" {
		rs := []rune(p.filter)
		p.filter = string(rs[:len(rs)-1])
		p.applyFilter()
	}
}

func (p *DocPicker) applyFilter() {
	var listItems []list.Item
	if p.filter == "" {
		for _, item := range p.items {
			listItems = append(listItems, item)
		}
	} else {
		matches := fuzzy.FindFrom(p.filter, p.items)
		for _, match := range matches {
			listItems = append(listItems, p.items[match.Index])
		}
	}
	p.list.SetItems(listItems)
}

// Update handles messages for the picker
func (p *DocPicker) Update(msg tea.Msg) (*DocPicker, tea.Cmd) {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the picker
func (p *DocPicker) View() string {
	header := ""
	if p.filter != "" {
		header = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
			Render("filter: "+p.filter) + "\n"
	}
	return header + p.list.View()
}

// Selected returns the highlighted document
func (p *DocPicker) Selected() (registry.Document, bool) {
	item, ok := p.list.SelectedItem().(docItem)
	if !ok {
		return registry.Document{}, false
	}
	return item.doc, true
}

// SetSize updates the picker dimensions
func (p *DocPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.list.SetSize(width, height)
}
