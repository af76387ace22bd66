package accountdb

import "errors"

var (
	// ErrInvalidSlot is returned when a slot index is outside 1..4.
	ErrInvalidSlot = errors.New("slot index must be between 1 and 4")
	// ErrInvalidInput is returned when a label or secret exceeds its fixed
	// bound, or when a source slot required to be occupied is empty.
	ErrInvalidInput = errors.New("invalid record input")
	// ErrCorrupt is returned when an occupied slot fails its integrity check.
	ErrCorrupt = errors.New("record integrity check failed")
	// ErrStorageFault is returned when the underlying storage device fails.
	ErrStorageFault = errors.New("storage device fault")
	// ErrUnformatted is returned when the database header is missing or fails
	// its integrity check.
	ErrUnformatted = errors.New("device is not formatted")
	// ErrDeviceTooSmall is returned when the storage device cannot hold the
	// header and all four slot records.
	ErrDeviceTooSmall = errors.New("storage device is too small for the database layout")
)
