package session

import (
	"context"
	"time"

	"github.com/quadkey/quadkey/pkg/logger"
)

// Run drives the controller until ctx is canceled: one cooperative loop that
// drains keypad edges and ticks the display refresh. All collaborator calls
// happen on this goroutine, so no locking is needed anywhere in the
// controller.
//
// On shutdown the hardware is returned to the standby pose and the display
// shows that the device is offline.
func (c *Controller) Run(ctx context.Context) error {
	started := time.Now()
	c.cfg.logger.Info("session controller started")

	ticker := time.NewTicker(c.cfg.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.cfg.logger.Info("session controller stopping", logger.Duration(time.Since(started)))
			c.enterStandby()
			c.display.SetText("OFFLINE")
			return ctx.Err()
		case <-ticker.C:
			for _, ev := range c.keys.Events() {
				if ev.Pressed {
					c.HandleKey(ev.Key)
				}
			}
			c.Tick()
		}
	}
}
