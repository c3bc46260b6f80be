package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the browser.
type keyMap struct {
	NewTab      key.Binding
	CloseTab    key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	Navigate    key.Binding
	Back        key.Binding
	Forward     key.Binding
	Reload      key.Binding
	Home        key.Binding
	Settings    key.Binding
	Downloads   key.Binding
	ClosePanels key.Binding
	CopyURL     key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Panel keys
	Up         key.Binding
	Down       key.Binding
	Delete     key.Binding
	OpenFolder key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		NewTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "new tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+pgdown"),
			key.WithHelp("ctrl+pgdn", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+pgup"),
			key.WithHelp("ctrl+pgup", "prev tab"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("ctrl+shift+left"),
			key.WithHelp("ctrl+shift+←", "move tab left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("ctrl+shift+right"),
			key.WithHelp("ctrl+shift+→", "move tab right"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Back: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Home: key.NewBinding(
			key.WithKeys("alt+home"),
			key.WithHelp("alt+home", "home"),
		),
		Settings: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "settings"),
		),
		Downloads: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "downloads"),
		),
		ClosePanels: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close panel"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy url"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		OpenFolder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open folder"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.NewTab, k.CloseTab, k.Settings, k.Downloads, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTab, k.CloseTab, k.NextTab, k.PrevTab, k.MoveLeft, k.MoveRight},
		{k.Navigate, k.Back, k.Forward, k.Reload, k.Home, k.CopyURL},
		{k.Settings, k.Downloads, k.ClosePanels, k.Help, k.Quit},
	}
}
