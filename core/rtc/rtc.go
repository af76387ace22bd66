// Package rtc abstracts the real-time-clock collaborator. The canonical
// exchange format is UTC seconds since the Unix epoch; converting to and from
// civil date/time fields is the caller's concern (see FromCivil for the
// management path).
package rtc

import (
	"errors"
	"sync"
	"time"
)

// ErrNotSettable is returned by sources whose time cannot be adjusted.
var ErrNotSettable = errors.New("time source is not settable")

// Source provides current UTC time as epoch seconds and accepts a set-time
// request. Hardware RTC drivers implement this interface.
type Source interface {
	// Now returns the current UTC time in seconds since the Unix epoch.
	Now() (int64, error)
	// Set adjusts the clock to the given UTC epoch seconds.
	Set(epoch int64) error
}

// SystemSource reads the host wall clock. Set is rejected: the host clock is
// managed by the operating system.
type SystemSource struct{}

// Now returns the current UTC time in seconds since the Unix epoch.
func (SystemSource) Now() (int64, error) { return time.Now().Unix(), nil }

// Set always fails with ErrNotSettable.
func (SystemSource) Set(int64) error { return ErrNotSettable }

// MemSource is a settable clock that keeps an offset from the host monotonic
// clock, standing in for a battery-backed RTC in tests and host tooling.
type MemSource struct {
	mu     sync.Mutex
	base   int64     // epoch seconds at the last Set
	setAt  time.Time // host time of the last Set
	frozen bool
}

// NewMemSource creates a running MemSource starting at epoch.
func NewMemSource(epoch int64) *MemSource {
	return &MemSource{base: epoch, setAt: time.Now()}
}

// NewFrozenSource creates a MemSource that does not advance until Set is
// called again. Tests use it to pin derivations to exact time steps.
func NewFrozenSource(epoch int64) *MemSource {
	return &MemSource{base: epoch, setAt: time.Now(), frozen: true}
}

// Now returns the current UTC time in seconds since the Unix epoch.
func (s *MemSource) Now() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return s.base, nil
	}
	return s.base + int64(time.Since(s.setAt)/time.Second), nil
}

// Set adjusts the clock to the given UTC epoch seconds.
func (s *MemSource) Set(epoch int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = epoch
	s.setAt = time.Now()
	return nil
}

// FromCivil converts UTC civil date/time fields to epoch seconds. It is the
// bridge between the management surface's set_time(y,mo,d,h,mi,s) form and
// the Source contract.
func FromCivil(year, month, day, hour, minute, second int) int64 {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC).Unix()
}

// Format renders epoch seconds as "2006-01-02 15:04:05" in UTC for the
// management surface and the device display.
func Format(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04:05")
}
