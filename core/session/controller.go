package session

import (
	"fmt"

	"github.com/quadkey/quadkey/core/accountdb"
	"github.com/quadkey/quadkey/core/hotp"
	"github.com/quadkey/quadkey/core/rtc"
	"github.com/quadkey/quadkey/pkg/logger"
)

// State is the controller's top-level mode.
type State int

const (
	// Standby means no slot is selected: lights off, backlight off.
	Standby State = iota
	// Selected means one occupied slot is active and its code is displayed.
	Selected
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Selected {
		return "selected"
	}
	return "standby"
}

// Controller is the input/display state machine. It consumes key edge
// events, selects the active slot, derives codes through the OTP engine and
// renders them on the display. It runs on a single goroutine; HandleKey and
// Tick must not be called concurrently with each other or with Run.
type Controller struct {
	db      Database
	clock   rtc.Source
	keys    Keypad
	lights  Lights
	display Display
	cfg     config

	state    State
	selected int    // 1..4 while Selected, 0 otherwise
	lastStep uint64 // last rendered TOTP step
}

// New wires a controller to its collaborators and puts the hardware into the
// standby pose (all lights off, backlight off).
func New(db Database, clock rtc.Source, keys Keypad, lights Lights, display Display, opts ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller{
		db:      db,
		clock:   clock,
		keys:    keys,
		lights:  lights,
		display: display,
		cfg:     cfg,
	}
	c.enterStandby()
	return c
}

// State returns the current controller state.
func (c *Controller) State() State { return c.state }

// SelectedSlot returns the active slot (1..4), or 0 in standby.
func (c *Controller) SelectedSlot() int { return c.selected }

// HandleKey processes a key-down edge for key k (1..4).
//
// From standby, pressing the key of an occupied slot selects it. While a
// slot is selected, the same key drops back to standby and a different key
// switches the selection if that slot is occupied. Keys for empty slots do
// nothing.
func (c *Controller) HandleKey(k int) {
	if k < 1 || k > accountdb.MaxSlots {
		c.cfg.logger.Debug("ignoring key outside slot range", logger.Key(k))
		return
	}

	if c.state == Selected && k == c.selected {
		c.cfg.logger.Info("deselected", logger.Slot(k))
		c.enterStandby()
		return
	}

	occupied, ok := c.slotOccupied(k)
	if !ok {
		// Read failure on the candidate slot; the current selection (if
		// any) is untouched and still valid.
		if c.state == Standby {
			c.failSelection(k)
		}
		return
	}
	if !occupied {
		c.cfg.logger.Debug("key for empty slot ignored", logger.Key(k), logger.State(c.state.String()))
		return
	}

	// Clearing every light also drops any leftover error indicator.
	for key := 1; key <= accountdb.MaxSlots; key++ {
		c.lights.Set(key, LightOff)
	}
	c.state = Selected
	c.selected = k
	c.lights.Set(k, LightOn)
	c.display.SetBacklight(true)
	c.cfg.logger.Info("selected", logger.Slot(k))
	c.refresh(true)
}

// Tick re-renders the displayed code when the 30-second step has rolled
// over. Sub-step ticks are no-ops. Safe to call in standby.
func (c *Controller) Tick() {
	if c.state != Selected {
		return
	}
	c.refresh(false)
}

// slotOccupied checks whether a slot holds a valid record without retaining
// its secret. ok is false when the database reported a failure.
func (c *Controller) slotOccupied(slot int) (occupied, ok bool) {
	rec, occupied, err := c.db.ReadSlot(slot)
	if err != nil {
		c.cfg.logger.Error("slot read failed", logger.Slot(slot), logger.Error(err))
		return false, false
	}
	rec.Wipe()
	return occupied, true
}

// refresh derives and displays the code for the selected slot. The secret
// copy lives only for the duration of this call.
func (c *Controller) refresh(force bool) {
	now, err := c.clock.Now()
	if err != nil || now < 0 {
		c.cfg.logger.Error("clock read failed", logger.Error(err))
		c.failSelection(c.selected)
		return
	}

	step := uint64(now) / hotp.Period
	if !force && step == c.lastStep {
		return
	}

	rec, occupied, err := c.db.ReadSlot(c.selected)
	if err != nil {
		c.cfg.logger.Error("selected slot unreadable", logger.Slot(c.selected), logger.Error(err))
		c.failSelection(c.selected)
		return
	}
	if !occupied {
		// The slot was erased out from under the selection.
		c.cfg.logger.Warn("selected slot became empty", logger.Slot(c.selected))
		c.enterStandby()
		return
	}

	code, err := hotp.DeriveTOTP(rec.Secret, uint64(now), hotp.Period, hotp.Digits)
	rec.Wipe()
	if err != nil {
		c.cfg.logger.Error("code derivation failed", logger.Slot(c.selected), logger.Error(err))
		c.failSelection(c.selected)
		return
	}

	c.display.SetText(fmt.Sprintf("%s\n%d %s\n%s", rtc.Format(now), rec.Slot, rec.Label, code))
	c.lastStep = step
}

// enterStandby clears the selection: lights off, backlight off, display
// blank.
func (c *Controller) enterStandby() {
	for k := 1; k <= accountdb.MaxSlots; k++ {
		c.lights.Set(k, LightOff)
	}
	c.display.SetText("")
	c.display.SetBacklight(false)
	c.state = Standby
	c.selected = 0
	c.lastStep = 0
}

// failSelection is the fatal-to-this-selection path: never leave a stale or
// corrupt-derived code on screen. The failing key keeps an error light and
// the backlight stays on, so the fault is readable from standby; other slots
// remain usable.
func (c *Controller) failSelection(key int) {
	c.enterStandby()
	c.display.SetText("ERROR")
	c.display.SetBacklight(true)
	if key >= 1 && key <= accountdb.MaxSlots {
		c.lights.Set(key, LightError)
	}
}
