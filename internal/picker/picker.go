package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	topicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

// Picker is a small TUI for finding a link by fuzzy title search.
// The result list is refreshed from the store whenever the query changes.
type Picker struct {
	store     *model.Store
	results   []search.SearchResult
	input     textinput.Model
	keys      KeyMap
	help      help.Model
	copy      CopyFunc
	cursor    int
	selected  bool
	yanked    bool
	cancelled bool
	err       error
	width     int
	height    int
}

// New creates a Picker over store, pre-filled with query.
func New(store *model.Store, query string) Picker {
	return NewWithClipboard(store, query, clipboard.WriteAll)
}

// NewWithClipboard creates a Picker that copies URLs with copyFn.
func NewWithClipboard(store *model.Store, query string, copyFn CopyFunc) Picker {
	input := textinput.New()
	input.Placeholder = "Search links..."
	input.Prompt = "/ "
	input.SetValue(query)
	input.Focus()

	p := Picker{
		store:  store,
		input:  input,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		copy:   copyFn,
		width:  80,
		height: 24,
	}
	p.refresh()
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Open):
			if len(p.results) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Yank):
			if len(p.results) == 0 {
				return p, nil
			}
			if err := p.copy(p.results[p.cursor].Link.URL); err != nil {
				p.err = fmt.Errorf("copy to clipboard: %w", err)
				return p, nil
			}
			p.yanked = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}
	}

	// Everything else edits the query
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refresh()
	}
	return p, cmd
}

// refresh recomputes results for the current query and resets the cursor.
func (p *Picker) refresh() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.results = search.AllLinks(p.store)
	} else {
		p.results = search.FuzzySearchLinks(p.store, query)
	}
	p.cursor = 0
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("Find (%d results)", len(p.results))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	// Each result takes two lines; keep header and footer visible
	visible := (p.height - 8) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := min(start+visible, len(p.results))

	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := style.Render(result.Link.Title)
		topic := topicStyle.Render("[" + result.TopicName + "]")
		url := urlStyle.Render(result.Link.URL)

		fmt.Fprintf(&b, "%s%s %s\n", cursor, title, topic)
		fmt.Fprintf(&b, "   %s\n", url)
	}

	// Footer
	b.WriteString("\n")
	if p.err != nil {
		b.WriteString(errorStyle.Render(p.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(p.help.View(p.keys))

	return b.String()
}

// Selected returns the chosen result, or false if nothing was opened.
func (p Picker) Selected() (search.SearchResult, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return search.SearchResult{}, false
	}
	return p.results[p.cursor], true
}

// SelectedLink returns the chosen link, or nil if nothing was opened.
func (p Picker) SelectedLink() *model.Link {
	result, ok := p.Selected()
	if !ok {
		return nil
	}
	return &result.Link
}

// Yanked returns true if the user copied a URL instead of opening it.
func (p Picker) Yanked() bool {
	return p.yanked
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Results returns the results for the current query.
func (p Picker) Results() []search.SearchResult {
	return p.results
}
