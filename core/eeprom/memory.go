package eeprom

import "sync"

// MemDevice is an in-memory Device for tests and host-side development. The
// zero page size and count are not valid; construct with NewMemDevice.
//
// Fault injection: FailReads and FailWrites make subsequent operations return
// the given error, and FailWritesAfter aborts partway through a multi-page
// write, which lets tests exercise storage-fault and torn-write paths without
// a flaky physical device.
type MemDevice struct {
	mu            sync.Mutex
	pageSize      int
	data          []byte
	readErr       error
	writeErr      error
	writeBudget   int
	writeAfterErr error
}

// NewMemDevice creates a zero-filled in-memory device.
func NewMemDevice(pageSize, pageCount int) *MemDevice {
	return &MemDevice{
		pageSize: pageSize,
		data:     make([]byte, pageSize*pageCount),
	}
}

// PageSize returns the fixed page size in bytes.
func (d *MemDevice) PageSize() int { return d.pageSize }

// PageCount returns the number of pages on the device.
func (d *MemDevice) PageCount() int { return len(d.data) / d.pageSize }

// ReadPage fills buf with the contents of the given page.
func (d *MemDevice) ReadPage(page int, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readErr != nil {
		return d.readErr
	}
	if len(buf) != d.pageSize {
		return ErrPageSize
	}
	if page < 0 || page >= d.PageCount() {
		return ErrOutOfRange
	}
	copy(buf, d.data[page*d.pageSize:])
	return nil
}

// WritePage persists data to the given page.
func (d *MemDevice) WritePage(page int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.writeErr != nil {
		return d.writeErr
	}
	if d.writeAfterErr != nil {
		if d.writeBudget == 0 {
			return d.writeAfterErr
		}
		d.writeBudget--
	}
	if len(data) != d.pageSize {
		return ErrPageSize
	}
	if page < 0 || page >= d.PageCount() {
		return ErrOutOfRange
	}
	copy(d.data[page*d.pageSize:], data)
	return nil
}

// FailReads makes all subsequent reads return err. Pass nil to clear.
func (d *MemDevice) FailReads(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readErr = err
}

// FailWrites makes all subsequent writes return err. Pass nil to clear.
func (d *MemDevice) FailWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeErr = err
}

// FailWritesAfter lets the next n writes through, then makes every later
// write return err. This is how tests interrupt a multi-page write partway.
// Pass a nil err to clear.
func (d *MemDevice) FailWritesAfter(n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeBudget = n
	d.writeAfterErr = err
}

// Corrupt XORs the byte at off with mask, simulating bit rot.
func (d *MemDevice) Corrupt(off int, mask byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data[off] ^= mask
}

// Bytes returns a copy of the full device contents.
func (d *MemDevice) Bytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.data))
	copy(out, d.data)
	return out
}
