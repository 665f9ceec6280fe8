package activitylist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lawnlog/internal/models"
)

type AddActivityMsg struct{}

type DeleteActivityMsg struct {
	ID string
}

type RestoreActivityMsg struct {
	ID string
}

type Item struct {
	Activity models.Activity
}

func (i Item) Title() string {
	title := i.Activity.Date + "  " + i.Activity.Type.Label()
	if i.Activity.DeletedAt != nil {
		return title + " (deleted)"
	}
	return title
}

func (i Item) Description() string {
	desc := i.Activity.Notes
	if desc == "" {
		desc = "no notes"
	}
	if i.Activity.DeletedAt != nil {
		desc += " | can restore with 'u'"
	}
	return desc
}

func (i Item) FilterValue() string {
	return i.Activity.Date + " " + string(i.Activity.Type) + " " + i.Activity.Notes
}

type KeyMap struct {
	Add     key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log activity"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(activities []models.Activity, width, height int) Model {
	l := list.New(toItems(activities), list.NewDefaultDelegate(), width, height)
	l.Title = "Activity log"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

func toItems(activities []models.Activity) []list.Item {
	items := make([]list.Item, len(activities))
	for i, a := range activities {
		items[i] = Item{Activity: a}
	}
	return items
}

func (m *Model) SetActivities(activities []models.Activity) {
	m.list.SetItems(toItems(activities))
}

// Len is the number of listed activities, deleted ones included.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted activity.
func (m Model) Selected() (models.Activity, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Activity, true
	}
	return models.Activity{}, false
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddActivityMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok && a.DeletedAt == nil {
				return m, func() tea.Msg { return DeleteActivityMsg{ID: a.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Restore):
			if a, ok := m.Selected(); ok && a.DeletedAt != nil {
				return m, func() tea.Msg { return RestoreActivityMsg{ID: a.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  Nothing logged yet.\n  Press 'a' to log an activity."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
