package session

import "github.com/quadkey/quadkey/core/accountdb"

// KeyEvent is one pressed or released edge for a physical key. Keys are
// numbered 1..4 and map one-to-one to account slots.
type KeyEvent struct {
	Key     int
	Pressed bool
}

// Keypad is the key input collaborator. Events drains the pending edge
// events in arrival order; the driver performs debouncing and edge
// detection.
type Keypad interface {
	Events() []KeyEvent
}

// Light is the state of a per-key indicator.
type Light int

const (
	// LightOff turns the indicator off.
	LightOff Light = iota
	// LightOn marks the key's slot as selected.
	LightOn
	// LightError flags a storage or integrity failure on the key's slot.
	LightError
)

// Lights is the per-key indicator collaborator.
type Lights interface {
	Set(key int, state Light)
}

// Display is the text display collaborator.
type Display interface {
	SetText(text string)
	SetBacklight(on bool)
}

// Database is the slice of the account database the controller needs. It
// only ever reads; all writes stay on the management path.
type Database interface {
	ReadSlot(slot int) (rec accountdb.Record, occupied bool, err error)
}
