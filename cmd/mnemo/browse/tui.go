package browsecmder

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
	"github.com/mnemohq/mnemo/pkg/memory"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

type browseView int

const (
	viewList browseView = iota
	viewEntry
)

var (
	browseTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	browseMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	browseDividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	browseTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	browseActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	browseHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	browseErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type browseKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	NextCat key.Binding
	PrevCat key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Open, k.Back, k.NextCat, k.Refresh, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up, k.Open, k.Back}, {k.NextCat, k.PrevCat, k.Refresh, k.Quit}}
}

func defaultKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "back")),
		NextCat: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
		PrevCat: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type entriesLoadedMsg struct {
	entries []*memory.Metadata
	err     error
}

type entryLoadedMsg struct {
	entry    *memory.Entry
	rendered string
	err      error
}

type browseModel struct {
	store      memory.Store
	categories []string
	catIndex   int
	entries    []*memory.Metadata
	cursor     int
	view       browseView
	current    *memory.Entry
	viewport   viewport.Model
	width      int
	height     int
	status     string
	keys       browseKeyMap
	help       help.Model
}

func (c *browseCommander) run(ctx context.Context, rt *cmdutil.Runtime) error {
	categories := rt.Store.Categories()
	if len(categories) == 0 {
		return fmt.Errorf("no categories configured")
	}

	catIndex := 0
	if c.category != "" {
		for i, cat := range categories {
			if cat == c.category {
				catIndex = i
			}
		}
	}

	model := browseModel{
		store:      rt.Store,
		categories: categories,
		catIndex:   catIndex,
		viewport:   viewport.New(80, 20),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func (m browseModel) Init() bubbletea.Cmd {
	return loadEntriesCmd(m.store, m.categories[m.catIndex])
}

func (m browseModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		m.status = ""
		if m.cursor >= len(m.entries) {
			m.cursor = max(len(m.entries)-1, 0)
		}
		return m, nil

	case entryLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.current = msg.entry
		m.viewport.SetContent(msg.rendered)
		m.viewport.GotoTop()
		m.view = viewEntry
		m.status = ""
		// The read bumped the access count, refresh the listing behind us.
		return m, loadEntriesCmd(m.store, m.categories[m.catIndex])

	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browseModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.view == viewEntry {
			m.view = viewList
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.view == viewList && len(m.entries) > 0 {
			name := path.Base(m.entries[m.cursor].RelativePath)
			return m, loadEntryCmd(m.store, name, m.categories[m.catIndex])
		}

	case key.Matches(msg, m.keys.NextCat):
		if m.view == viewList {
			return m.switchCategory(1)
		}

	case key.Matches(msg, m.keys.PrevCat):
		if m.view == viewList {
			return m.switchCategory(-1)
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, loadEntriesCmd(m.store, m.categories[m.catIndex])

	case key.Matches(msg, m.keys.Up):
		if m.view == viewList {
			return m.moveCursor(-1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.view == viewList {
			return m.moveCursor(1)
		}
	}

	// The viewport owns scrolling keys in the entry view.
	if m.view == viewEntry {
		var cmd bubbletea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m browseModel) moveCursor(delta int) (bubbletea.Model, bubbletea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}

	return m, nil
}

func (m browseModel) switchCategory(delta int) (bubbletea.Model, bubbletea.Cmd) {
	m.catIndex = (m.catIndex + delta + len(m.categories)) % len(m.categories)
	m.cursor = 0
	return m, loadEntriesCmd(m.store, m.categories[m.catIndex])
}

func (m browseModel) View() string {
	if m.view == viewEntry {
		return m.viewEntry()
	}
	return m.viewList()
}

func (m browseModel) viewList() string {
	lines := []string{
		browseTitleStyle.Render("mnemo browse"),
		m.viewTabs(),
		renderRule(m.width),
	}

	if m.status != "" {
		lines = append(lines, browseErrorStyle.Render(m.status))
	}

	if len(m.entries) == 0 {
		lines = append(lines, browseMutedStyle.Render("  no memories in this category"))
	} else {
		lines = append(lines, browseMutedStyle.Render("  name                          size       age      reads"))
		for i, meta := range m.entries {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}

			line := fmt.Sprintf("%s %-28s %9s  %8s  %5d",
				cursor,
				truncateText(path.Base(meta.RelativePath), 28),
				cliui.FormatBytes(meta.Size),
				cliui.FormatAge(meta.LastUpdated),
				meta.AccessCount,
			)

			if i == m.cursor {
				line = browseHighlightStyle.Render(line)
			}

			lines = append(lines, line)
		}
	}

	lines = append(lines, "", browseMutedStyle.Render(m.help.View(m.keys)))

	return strings.Join(lines, "\n")
}

func (m browseModel) viewEntry() string {
	if m.current == nil {
		return browseMutedStyle.Render("no entry selected")
	}

	meta := m.current.Metadata
	header := browseTitleStyle.Render("mnemo browse › "+meta.RelativePath) +
		"  " +
		browseMutedStyle.Render(fmt.Sprintf("%s · %s · %d reads",
			cliui.FormatBytes(meta.Size),
			cliui.FormatAge(meta.LastUpdated),
			meta.AccessCount,
		))

	lines := []string{
		header,
		renderRule(m.width),
		m.viewport.View(),
		renderRule(m.width),
		browseMutedStyle.Render(m.help.View(m.keys)),
	}

	return strings.Join(lines, "\n")
}

func (m browseModel) viewTabs() string {
	tabs := make([]string, 0, len(m.categories))
	for i, cat := range m.categories {
		if i == m.catIndex {
			tabs = append(tabs, browseActiveTabStyle.Render("["+cat+"]"))
		} else {
			tabs = append(tabs, browseTabStyle.Render(" "+cat+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func loadEntriesCmd(store memory.Store, category string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		entries, err := store.List(context.Background(), category)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func loadEntryCmd(store memory.Store, name, category string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		entry, err := store.Retrieve(context.Background(), name, category)
		if err != nil {
			return entryLoadedMsg{err: err}
		}

		rendered, err := renderMarkdown(entry.Content)
		if err != nil {
			rendered = entry.Content
		}

		return entryLoadedMsg{entry: entry, rendered: rendered}
	}
}

// renderMarkdown renders entry content for terminal display using glamour.
func renderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content, err
	}

	return r.Render(content)
}

func renderRule(width int) string {
	if width <= 0 {
		width = 80
	}
	return browseDividerStyle.Render(strings.Repeat("─", width))
}

func truncateText(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}
