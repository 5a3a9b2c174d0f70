package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
)

// Progress viewer tabs.
const (
	tabValues = iota
	tabInventory
	tabCount
)

// ProgressSource is the saved progress shown by the viewer.
type ProgressSource interface {
	AllValues() (map[string]int, error)
	LoadInventory() ([]uint32, error)
	LatestSlot() (storage.SaveSlot, bool, error)
}

// ProgressKeyMap defines the key bindings for the progress viewer.
type ProgressKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextTab, k.PrevTab}, {k.Quit}}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel shows the stored key/value flags and the inventory.
type ProgressModel struct {
	values    []table.Row
	inventory []table.Row
	slot      string
	tab       int
	table     table.Model
	help      help.Model
	keys      ProgressKeyMap
	width     int
	height    int
	quitting  bool
}

// NewProgressModel reads everything from src up front.
func NewProgressModel(src ProgressSource, repo *species.Repository, width, height int) (ProgressModel, error) {
	values, err := src.AllValues()
	if err != nil {
		return ProgressModel{}, err
	}
	items, err := src.LoadInventory()
	if err != nil {
		return ProgressModel{}, err
	}
	slot, ok, err := src.LatestSlot()
	if err != nil {
		return ProgressModel{}, err
	}

	m := ProgressModel{
		values:    ValueRows(values),
		inventory: InventoryRows(items, repo),
		slot:      "no save yet",
		keys:      DefaultProgressKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	if ok {
		m.slot = fmt.Sprintf("world %d at (%d, %d), %s", slot.WorldID, slot.HeroX, slot.HeroY, slot.CreatedAt.Format("Jan 02 15:04"))
	}
	m.table = m.createTable()
	return m, nil
}

// ValueRows lists key/value pairs sorted by key.
func ValueRows(values map[string]int) []table.Row {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]table.Row, len(keys))
	for i, k := range keys {
		rows[i] = table.Row{k, fmt.Sprint(values[k])}
	}
	return rows
}

// InventoryRows counts the items per species. Unknown species are listed
// by id.
func InventoryRows(items []uint32, repo *species.Repository) []table.Row {
	counts := make(map[uint32]int)
	for _, id := range items {
		counts[id]++
	}
	ids := make([]uint32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]table.Row, len(ids))
	for i, id := range ids {
		name := fmt.Sprint(id)
		if repo != nil {
			if sp, err := repo.ByID(species.ID(id)); err == nil {
				name = sp.Name
			}
		}
		rows[i] = table.Row{name, fmt.Sprint(counts[id])}
	}
	return rows
}

// createTable creates the table for the current tab.
func (m *ProgressModel) createTable() table.Model {
	first := "Key"
	if m.tab == tabInventory {
		first = "Item"
	}
	width := max(m.width-8, 30)
	columns := []table.Column{
		{Title: first, Width: width - 12},
		{Title: "Value", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	if m.tab == tabInventory {
		t.SetRows(m.inventory)
	} else {
		t.SetRows(m.values)
	}
	return t
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress viewer.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress viewer.
func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("PROGRESS"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.slot))
	b.WriteString("\n\n")

	tabs := []string{"Values", "Inventory"}
	for i, name := range tabs {
		if i == m.tab {
			tabs[i] = selectedStyle.Render("[" + name + "]")
		} else {
			tabs[i] = dimStyle.Render(" " + name + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	rows := m.values
	if m.tab == tabInventory {
		rows = m.inventory
	}
	if len(rows) == 0 {
		b.WriteString(tableStyle.Render(dimStyle.Italic(true).Render("Nothing saved yet.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunProgress runs the progress viewer.
func RunProgress(src ProgressSource, repo *species.Repository, width, height int) error {
	model, err := NewProgressModel(src, repo, width, height)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
