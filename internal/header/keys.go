package header

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the header's keybindings.
type KeyMap struct {
	Back         key.Binding
	EditPath     key.Binding
	Search       key.Binding
	Cancel       key.Binding
	Submit       key.Binding
	Blur         key.Binding
	Views        key.Binding
	Sort         key.Binding
	Upload       key.Binding
	Mark         key.Binding // marks a file in the upload picker
	CreateFolder key.Binding
	Reload       key.Binding
	Crumbs       []key.Binding // one per displayed crumb position
}

// DefaultKeyMap returns default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("backspace", "alt+left"),
			key.WithHelp("⌫", "back"),
		),
		EditPath: key.NewBinding(
			key.WithKeys("ctrl+l", "g"),
			key.WithHelp("ctrl+l/g", "go to path"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to folder"),
		),
		Blur: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "to results"),
		),
		Views: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "views"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload files"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark file"),
		),
		CreateFolder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "create folder"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "reload"),
		),
		Crumbs: []key.Binding{
			key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "crumb 1")),
			key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "crumb 2")),
			key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "crumb 3")),
			key.NewBinding(key.WithKeys("alt+4"), key.WithHelp("alt+4", "crumb 4")),
			key.NewBinding(key.WithKeys("alt+5"), key.WithHelp("alt+5", "crumb 5")),
		},
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.EditPath, k.Search, k.Views, k.Sort, k.Upload, k.CreateFolder, k.Reload}
}

// FullHelp returns bindings grouped for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.EditPath, k.Submit, k.Cancel},
		{k.Search, k.Blur, k.Views, k.Sort},
		{k.Upload, k.Mark, k.CreateFolder, k.Reload},
	}
}
