package eeprom

import "errors"

var (
	// ErrOutOfRange is returned when a page index or byte range falls outside
	// the device bounds.
	ErrOutOfRange = errors.New("page or byte range outside device bounds")
	// ErrPageSize is returned when a page buffer does not match the device
	// page size.
	ErrPageSize = errors.New("buffer length must equal device page size")
	// ErrVerify is returned when a read-back after write does not match the
	// written data.
	ErrVerify = errors.New("read-back verification mismatch")
	// ErrClosed is returned when operating on a closed device.
	ErrClosed = errors.New("device is closed")
)
