package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding
	Home       key.Binding
	Activity   key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding

	// List actions
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	LoadMore key.Binding
	Reload   key.Binding

	// Space actions
	Toggle      key.Binding
	Compare     key.Binding
	ClearSelect key.Binding
	EditSpace   key.Binding
	DeleteSpace key.Binding

	// Compare actions
	NextTab  key.Binding
	PrevTab  key.Binding
	Describe key.Binding

	// Activity log
	CycleLevel key.Binding

	// Forms and dialogs
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "All spaces"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		// List actions
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Load more"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		// Space actions
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Select for compare"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Compare selected"),
		),
		ClearSelect: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear selection"),
		),
		EditSpace: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Edit space"),
		),
		DeleteSpace: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete space"),
		),

		// Compare actions
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "Next piece"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "Previous piece"),
		),
		Describe: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Description"),
		),

		// Activity log
		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle level"),
		),

		// Forms and dialogs
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Open, k.Back},
		{k.New, k.Edit, k.Delete, k.LoadMore, k.Reload},
		{k.Toggle, k.Compare, k.ClearSelect, k.EditSpace, k.DeleteSpace},
		{k.NextTab, k.PrevTab, k.Describe},
		{k.Home, k.Activity, k.CycleLevel, k.CycleTheme, k.Help, k.Quit},
	}
}
