package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/benaskins/seedkeeper/internal/i18n"
)

type keyMap struct {
	Submit        key.Binding
	Hide          key.Binding
	Next          key.Binding
	Prev          key.Binding
	ToggleBalance key.Binding
	Suspend       key.Binding
	Quit          key.Binding
}

// newKeyMap builds the bindings with help text in the active language.
func newKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", i18n.T("help_submit")),
		),
		Hide: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T("help_hide")),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", i18n.T("help_next")),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧tab", i18n.T("help_prev")),
		),
		ToggleBalance: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", i18n.T("help_toggle_balance")),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", i18n.T("help_suspend")),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", i18n.T("help_quit")),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Hide, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Hide},
		{k.Next, k.Prev, k.ToggleBalance},
		{k.Suspend, k.Quit},
	}
}
