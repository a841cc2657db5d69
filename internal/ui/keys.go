package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Reload   key.Binding
	Pager    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p/←", "prev page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Pager: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in pager"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// routeKeys narrows the key map to the bindings that do something on the
// current page and implements help.KeyMap.
type routeKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k routeKeys) ShortHelp() []key.Binding  { return k.short }
func (k routeKeys) FullHelp() [][]key.Binding { return k.full }

func (k keyMap) forRoute(r route, diff viewport.KeyMap) routeKeys {
	switch r {
	case routeCommits:
		return routeKeys{
			short: []key.Binding{k.Enter, k.NextPage, k.PrevPage, k.Back, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Enter},
				{k.NextPage, k.PrevPage},
				{k.Reload, k.Back, k.Quit},
			},
		}
	case routeCommit:
		return routeKeys{
			short: []key.Binding{k.Up, k.Down, diff.Down, k.Pager, k.Back, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down},
				{diff.Up, diff.Down, diff.PageUp, diff.PageDown, diff.HalfPageUp, diff.HalfPageDown},
				{k.Pager, k.Reload, k.Back, k.Quit},
			},
		}
	default:
		return routeKeys{
			short: []key.Binding{k.Enter, k.Reload, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Enter},
				{k.Reload, k.Quit},
			},
		}
	}
}
