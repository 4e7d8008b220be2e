package review

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	Accept   key.Binding
	Revert   key.Binding
	Decline  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Finish   key.Binding
	Edit     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Quit     key.Binding
	ForceQ   key.Binding

	mode Mode
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analyser")),
		Accept:   key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a/enter", "godta endring")),
		Revert:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "angre endring")),
		Decline:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "behold original")),
		Next:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "neste")),
		Prev:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "forrige")),
		Finish:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullfør")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rediger tekst")),
		ScrollUp: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "rull opp")),
		ScrollDn: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "rull ned")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "avslutt")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "avslutt")),
	}
}

// ShortHelp implements help.KeyMap for the active mode.
func (k keyMap) ShortHelp() []key.Binding {
	switch k.mode {
	case ModeCompose:
		return []key.Binding{k.Submit, k.ForceQ}
	case ModeSubmitting:
		return []key.Binding{k.ForceQ}
	case ModeReviewing:
		return []key.Binding{k.Accept, k.Decline, k.Revert, k.Next, k.Prev, k.Finish, k.Quit}
	case ModeSummary:
		return []key.Binding{k.Edit, k.Quit}
	default:
		return nil
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Edit, k.ScrollUp, k.ScrollDn},
	}
}
