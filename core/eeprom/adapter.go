package eeprom

import (
	"bytes"
	"errors"
	"strconv"
)

// Device is the byte-storage collaborator: a page-addressed non-volatile
// memory such as a small I2C EEPROM. Page buffers must be exactly PageSize
// bytes; a write either persists the whole page or fails.
type Device interface {
	// PageSize returns the fixed page size in bytes.
	PageSize() int
	// PageCount returns the number of pages on the device.
	PageCount() int
	// ReadPage fills buf with the contents of the given page.
	ReadPage(page int, buf []byte) error
	// WritePage persists data to the given page.
	WritePage(page int, data []byte) error
}

// Adapter exposes byte-range access on top of a page-addressed Device,
// handling partial pages with read-modify-write. It is a thin, stateless
// pass-through; callers coordinate any higher-level atomicity.
type Adapter struct {
	dev    Device
	verify bool
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithReadBackVerify controls whether every page write is read back and
// compared against the written data. Enabled by default; disable only for
// devices whose driver already verifies writes.
func WithReadBackVerify(enabled bool) AdapterOption {
	return func(a *Adapter) {
		a.verify = enabled
	}
}

// NewAdapter wraps a Device for byte-range access.
func NewAdapter(dev Device, opts ...AdapterOption) *Adapter {
	a := &Adapter{dev: dev, verify: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PageSize returns the underlying device page size in bytes.
func (a *Adapter) PageSize() int {
	return a.dev.PageSize()
}

// Capacity returns the total device capacity in bytes.
func (a *Adapter) Capacity() int {
	return a.dev.PageSize() * a.dev.PageCount()
}

// ReadRange fills buf with the device contents starting at byte offset off.
func (a *Adapter) ReadRange(off int, buf []byte) error {
	if err := a.checkRange(off, len(buf)); err != nil {
		return err
	}

	size := a.dev.PageSize()
	page := make([]byte, size)
	for n := 0; n < len(buf); {
		p := (off + n) / size
		if err := a.dev.ReadPage(p, page); err != nil {
			return err
		}
		start := (off + n) % size
		n += copy(buf[n:], page[start:])
	}
	return nil
}

// WriteRange persists data starting at byte offset off. Pages are written
// highest-first, so within a single range the lowest-addressed bytes reach
// the device last. The account database relies on this: a record's occupied
// flag lives in its first byte, so an interrupted record write leaves a flag
// that is either stale or guarded by a failing checksum.
func (a *Adapter) WriteRange(off int, data []byte) error {
	if err := a.checkRange(off, len(data)); err != nil {
		return err
	}

	size := a.dev.PageSize()
	first := off / size
	last := (off + len(data) - 1) / size

	page := make([]byte, size)
	for p := last; p >= first; p-- {
		pageStart := p * size

		// Figure out which part of this page the range covers.
		lo := 0
		if off > pageStart {
			lo = off - pageStart
		}
		hi := size
		if off+len(data) < pageStart+size {
			hi = off + len(data) - pageStart
		}

		if lo > 0 || hi < size {
			// Partial page: merge with existing contents.
			if err := a.dev.ReadPage(p, page); err != nil {
				return err
			}
		}
		copy(page[lo:hi], data[pageStart+lo-off:])

		if err := a.dev.WritePage(p, page); err != nil {
			return err
		}
		if a.verify {
			if err := a.verifyPage(p, page); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Adapter) verifyPage(p int, want []byte) error {
	got := make([]byte, a.dev.PageSize())
	if err := a.dev.ReadPage(p, got); err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return errors.Join(ErrVerify, errors.New("page "+strconv.Itoa(p)))
	}
	return nil
}

func (a *Adapter) checkRange(off, n int) error {
	if off < 0 || n < 0 || off+n > a.Capacity() {
		return ErrOutOfRange
	}
	return nil
}
