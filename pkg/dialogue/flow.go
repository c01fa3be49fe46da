package dialogue

import (
	"time"

	"github.com/jwebster45206/shop-engine/pkg/shop"
)

// HideDelay is how long the farewell stays on screen.
const HideDelay = 2 * time.Second

const (
	GreetingText = "Ah-ha! A customer!\nWhat would you like to do today?"
	FarewellText = "Come back anytime!"
)

// State is where the merchant conversation currently is.
type State int

const (
	Hidden State = iota
	Greeting
	Shopping
	Farewell
)

func (s State) String() string {
	switch s {
	case Greeting:
		return "greeting"
	case Shopping:
		return "shopping"
	case Farewell:
		return "farewell"
	}
	return "hidden"
}

// Flow drives the conversation with the merchant: greet, pick buy or sell,
// open the shop, say goodbye.
type Flow struct {
	state       State
	choice      shop.Mode
	hidePending bool
}

func NewFlow() *Flow {
	return &Flow{}
}

func (f *Flow) State() State {
	return f.state
}

// Choice is the highlighted option in the greeting box.
func (f *Flow) Choice() shop.Mode {
	return f.choice
}

// Active reports whether the conversation or shop should freeze movement.
func (f *Flow) Active() bool {
	return f.state == Greeting || f.state == Shopping
}

// Text is the merchant's current line.
func (f *Flow) Text() string {
	switch f.state {
	case Greeting:
		return GreetingText
	case Farewell:
		return FarewellText
	}
	return ""
}

// Talk opens the greeting when the player is close enough and no
// conversation is showing. It reports whether the greeting opened.
func (f *Flow) Talk(inRange bool) bool {
	if !inRange || f.state != Hidden {
		return false
	}
	f.state = Greeting
	f.choice = shop.Buy
	return true
}

// Choose moves the buy/sell highlight while greeting.
func (f *Flow) Choose(m shop.Mode) {
	if f.state != Greeting {
		return
	}
	f.choice = m
}

// Confirm opens the shop in the chosen mode.
func (f *Flow) Confirm() (shop.Mode, bool) {
	if f.state != Greeting {
		return f.choice, false
	}
	f.state = Shopping
	return f.choice, true
}

// LeaveShop shows the farewell. The caller should schedule a hide.
func (f *Flow) LeaveShop() bool {
	if f.state != Shopping {
		return false
	}
	f.state = Farewell
	return true
}

// ScheduleHide claims the single pending hide. It returns false when a hide
// is already pending or there is nothing to hide, so a second timer is never
// started.
func (f *Flow) ScheduleHide() bool {
	if f.hidePending || f.state != Farewell {
		return false
	}
	f.hidePending = true
	return true
}

// Hide closes the farewell. Calling it more than once, or after the player
// started a new conversation, has no effect beyond clearing the pending flag.
func (f *Flow) Hide() {
	f.hidePending = false
	if f.state == Farewell {
		f.state = Hidden
	}
}
