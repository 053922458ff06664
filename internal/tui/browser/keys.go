package browser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	focusQuery  key.Binding
	blurQuery   key.Binding
	cycleTier   key.Binding
	cycleSource key.Binding
	cycleType   key.Binding
	clear       key.Binding
	switchKind  key.Binding
	insert      key.Binding
	quit        key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		focusQuery: key.NewBinding(
			key.WithKeys("/", "tab"),
			key.WithHelp("/", "search"),
		),
		blurQuery: key.NewBinding(
			key.WithKeys("esc", "tab", "enter", "down"),
			key.WithHelp("esc", "results"),
		),
		cycleTier: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tier"),
		),
		cycleSource: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "source"),
		),
		cycleType: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "type"),
		),
		clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		switchKind: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "adversaries/environments"),
		),
		insert: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "insert"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func shortHelp(keys *keyMap) []key.Binding {
	return []key.Binding{keys.insert, keys.focusQuery, keys.cycleTier, keys.cycleSource, keys.cycleType, keys.clear}
}

func fullHelp(keys *keyMap) []key.Binding {
	return append(shortHelp(keys), keys.switchKind)
}
