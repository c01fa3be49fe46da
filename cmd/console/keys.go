package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// screen is what currently owns the keyboard.
type screen int

const (
	screenLane screen = iota
	screenDialogue
	screenShop
	screenFarewell
)

// action is a named input, independent of the key that produced it.
type action int

const (
	actionNone action = iota
	actionQuit
	actionMoveUp
	actionMoveDown
	actionTalk
	actionChooseBuy
	actionChooseSell
	actionConfirmChoice
	actionNavigateUp
	actionNavigateDown
	actionDecrease
	actionIncrease
	actionConfirm
	actionItemsTab
	actionEquipmentTab
	actionBuyMode
	actionSellMode
	actionNextMember
	actionCopy
	actionLeave
)

type keyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Talk      key.Binding
	Decrease  key.Binding
	Increase  key.Binding
	Confirm   key.Binding
	Items     key.Binding
	Equipment key.Binding
	Buy       key.Binding
	Sell      key.Binding
	Member    key.Binding
	Copy      key.Binding
	Leave     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Up:        key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w", "up")),
		Down:      key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s", "down")),
		Talk:      key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "talk")),
		Decrease:  key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a", "less")),
		Increase:  key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d", "more")),
		Confirm:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "confirm")),
		Items:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "items")),
		Equipment: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "equipment")),
		Buy:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
		Sell:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "sell")),
		Member:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "party")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave")),
	}
}

// action maps a key press to an action for the given screen.
func (k keyMap) action(s screen, msg tea.KeyMsg) action {
	if key.Matches(msg, k.Quit) {
		return actionQuit
	}

	switch s {
	case screenLane:
		switch {
		case key.Matches(msg, k.Up):
			return actionMoveUp
		case key.Matches(msg, k.Down):
			return actionMoveDown
		case key.Matches(msg, k.Talk):
			return actionTalk
		case key.Matches(msg, k.Leave):
			return actionQuit
		}

	case screenDialogue:
		switch {
		case key.Matches(msg, k.Up):
			return actionChooseBuy
		case key.Matches(msg, k.Down):
			return actionChooseSell
		case key.Matches(msg, k.Talk):
			return actionConfirmChoice
		}

	case screenShop:
		switch {
		case key.Matches(msg, k.Up):
			return actionNavigateUp
		case key.Matches(msg, k.Down):
			return actionNavigateDown
		case key.Matches(msg, k.Decrease):
			return actionDecrease
		case key.Matches(msg, k.Increase):
			return actionIncrease
		case key.Matches(msg, k.Confirm):
			return actionConfirm
		case key.Matches(msg, k.Items):
			return actionItemsTab
		case key.Matches(msg, k.Equipment):
			return actionEquipmentTab
		case key.Matches(msg, k.Buy):
			return actionBuyMode
		case key.Matches(msg, k.Sell):
			return actionSellMode
		case key.Matches(msg, k.Member):
			return actionNextMember
		case key.Matches(msg, k.Copy):
			return actionCopy
		case key.Matches(msg, k.Leave):
			return actionLeave
		}
	}

	return actionNone
}

// bindingSet adapts a list of bindings to help.KeyMap.
type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding {
	return b
}

func (b bindingSet) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}

func (k keyMap) helpFor(s screen) bindingSet {
	switch s {
	case screenDialogue:
		return bindingSet{k.Up, k.Down, withHelp(k.Talk, "l", "choose"), k.Quit}
	case screenShop:
		return bindingSet{k.Up, k.Down, k.Decrease, k.Increase, k.Confirm, k.Items, k.Equipment, k.Buy, k.Sell, k.Member, k.Copy, k.Leave}
	case screenFarewell:
		return bindingSet{k.Quit}
	}
	return bindingSet{k.Up, k.Down, k.Talk, k.Quit}
}

func withHelp(b key.Binding, keyLabel, desc string) key.Binding {
	b.SetHelp(keyLabel, desc)
	return b
}
