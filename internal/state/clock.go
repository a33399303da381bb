package state

import (
	"context"
	"strconv"
	"time"
)

// Clock periodically refreshes the reserved clock-derived variables
// (timestamp, date, time) through the ordinary store write path, so ticks
// persist and race with external writers under the same last-write-wins
// rules as any other caller.
//
// The ticker is owned by the process lifecycle: Run blocks until the
// context is cancelled.
type Clock struct {
	store    *Store
	interval time.Duration
	logger   Logger
}

// NewClock creates a clock ticker writing through the given store.
func NewClock(store *Store, interval time.Duration) *Clock {
	return &Clock{
		store:    store,
		interval: interval,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the clock.
func (c *Clock) SetLogger(logger Logger) {
	c.logger = logger
}

// Run applies one tick immediately, then ticks at the configured interval
// until ctx is cancelled.
func (c *Clock) Run(ctx context.Context) {
	c.Tick(time.Now())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("clock ticker stopped")
			return
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}

// Tick writes the three clock variables for the given instant.
func (c *Clock) Tick(now time.Time) {
	c.store.SetVariable(VarTimestamp, strconv.FormatInt(now.Unix(), 10))
	c.store.SetVariable(VarDate, now.Format("2006-01-02"))
	c.store.SetVariable(VarTime, now.Format("15:04:05"))
}
