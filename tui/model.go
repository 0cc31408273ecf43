// Package tui is an interactive terminal view over a collection.View:
// a label filter bar above the list of matching pull requests.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/frobware/prfilter/collection"
)

// URLOpener opens a pull request outside the terminal.
type URLOpener interface {
	Browse(url string) error
}

// Options carry the side-effecting collaborators of the view.
type Options struct {
	Browser URLOpener
	Copy    func(text string) error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	filterStyle   = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = filterStyle.Reverse(true).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const helpText = "tab/shift+tab: filter • enter: open • y: copy URL • r: reload • q: quit"

// loadedMsg is sent when a Load started by the model returns.
type loadedMsg struct {
	err error
}

// statusMsg replaces the status line.
type statusMsg string

// item adapts a record to the bubbles list.
type item struct {
	rec collection.Record
}

func (i item) Title() string { return i.rec.Title }

func (i item) Description() string {
	parts := []string{
		fmt.Sprintf("Created by: %s | State: %s", i.rec.Author, i.rec.Status),
	}
	if d := i.rec.CreatedDate(); d != "" {
		parts = append(parts, "Opened on: "+d)
	}
	if labels := i.rec.LabelList(); labels != "" {
		parts = append(parts, "Labels: "+labels)
	}
	return strings.Join(parts, " | ")
}

func (i item) FilterValue() string { return i.rec.Title }

// Model is the bubbletea model. It owns no collection state of its
// own; every render reads the view's latest snapshot.
type Model struct {
	ctx     context.Context
	view    *collection.View
	repo    string
	opts    Options
	snap    collection.Snapshot
	list    list.Model
	status  string
	width   int
	height  int
	loading bool
}

// New returns a model over view. The view is loaded by Init.
func New(ctx context.Context, view *collection.View, repo string, opts Options) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("pull request", "pull requests")

	return Model{
		ctx:     ctx,
		view:    view,
		repo:    repo,
		opts:    opts,
		snap:    view.Snapshot(),
		list:    l,
		loading: true,
	}
}

// Init starts the single load.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	view, ctx := m.view, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: view.Load(ctx)}
	}
}

// Update handles load completion, resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if errors.Is(msg.err, collection.ErrClosed) || errors.Is(msg.err, collection.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		m.status = ""
		m.refresh()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.view.Close()
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.snap = collection.Snapshot{State: collection.Loading}
			return m, m.load()
		}

		if m.snap.State != collection.Ready {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.cycleFilter(1)
			return m, nil
		case "shift+tab":
			m.cycleFilter(-1)
			return m, nil
		case "enter", "o":
			return m, m.openSelected()
		case "y":
			return m, m.copySelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the current state.
func (m Model) View() string {
	switch m.snap.State {
	case collection.Loading:
		return "Loading...\n"
	case collection.Failed:
		return errorStyle.Render("Error: "+m.snap.Message) + "\n\n" + dimStyle.Render("r: retry • q: quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pull Requests from " + m.repo))
	b.WriteString("\n\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n\n")

	if m.snap.Empty() {
		b.WriteString("No PRs found.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(dimStyle.Render(helpText))
	return b.String()
}

// Filter returns the active label filter.
func (m Model) Filter() string {
	return m.snap.Filter
}

// Visible returns the records currently listed.
func (m Model) Visible() []collection.Record {
	return m.snap.Visible
}

func (m Model) filterBar() string {
	options := m.filterOptions()
	rendered := make([]string, 0, len(options))
	for _, opt := range options {
		name := opt
		if opt == collection.NoFilter {
			name = "All"
		}
		if opt == m.snap.Filter {
			rendered = append(rendered, selectedStyle.Render(name))
		} else {
			rendered = append(rendered, filterStyle.Render(name))
		}
	}
	return "Filter by Label: " + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// filterOptions is the leading no-filter entry followed by the label
// universe.
func (m Model) filterOptions() []string {
	return append([]string{collection.NoFilter}, m.snap.Labels...)
}

func (m *Model) cycleFilter(step int) {
	options := m.filterOptions()
	current := 0
	for i, opt := range options {
		if opt == m.snap.Filter {
			current = i
			break
		}
	}
	next := (current + step + len(options)) % len(options)
	m.view.SetFilter(options[next])
	m.refresh()
}

// refresh pulls the latest snapshot and rebuilds the list items.
func (m *Model) refresh() {
	m.snap = m.view.Snapshot()

	items := make([]list.Item, 0, len(m.snap.Visible))
	for _, rec := range m.snap.Visible {
		items = append(items, item{rec: rec})
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *Model) resize() {
	// Title, blank, filter bar, blank, status and help lines.
	h := m.height - 6
	if h < 0 {
		h = 0
	}
	m.list.SetSize(m.width, h)
}

func (m Model) selected() (collection.Record, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return collection.Record{}, false
	}
	return it.rec, true
}

func (m Model) openSelected() tea.Cmd {
	rec, ok := m.selected()
	if !ok || rec.URL == "" || m.opts.Browser == nil {
		return nil
	}
	opener := m.opts.Browser
	return func() tea.Msg {
		if err := opener.Browse(rec.URL); err != nil {
			return statusMsg(errorStyle.Render(fmt.Sprintf("failed to open %s: %v", rec.URL, err)))
		}
		return statusMsg("Opened " + rec.URL)
	}
}

func (m Model) copySelected() tea.Cmd {
	rec, ok := m.selected()
	if !ok || rec.URL == "" || m.opts.Copy == nil {
		return nil
	}
	copyFn := m.opts.Copy
	return func() tea.Msg {
		if err := copyFn(rec.URL); err != nil {
			return statusMsg(errorStyle.Render(fmt.Sprintf("failed to copy URL: %v", err)))
		}
		return statusMsg("Copied " + rec.URL)
	}
}
