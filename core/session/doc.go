// Package session is the input/display state machine of the authenticator:
// it maps key presses to an active account slot, keeps the indicator lights
// and backlight in step with the selection, and refreshes the displayed TOTP
// code on 30-second step boundaries.
//
// The controller has two states, standby and selected. It owns no durable
// data: secrets are fetched from the account database per derivation and
// wiped immediately, and the selection never survives a restart.
//
// # Usage
//
//	ctrl := session.New(db, clock, keypad, lights, display,
//		session.WithLogger(log),
//	)
//	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
//		return err
//	}
//
// Collaborators are interfaces (Keypad, Lights, Display, Database), so the
// whole state machine is testable without hardware. HandleKey and Tick are
// exported for exactly that: tests drive edges and clock steps directly
// instead of racing the Run loop.
package session
