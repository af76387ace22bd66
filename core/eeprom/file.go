package eeprom

import (
	"errors"
	"os"
)

// FileDevice is a Device backed by a flat image file, used by the management
// tools to edit a device image on a host. The file is created zero-filled if
// it does not exist and is synced after every page write, mirroring the
// write-through behavior of a real EEPROM.
type FileDevice struct {
	f         *os.File
	pageSize  int
	pageCount int
}

// OpenFileDevice opens (or creates) the image at path with the given
// geometry. An existing image must be exactly pageSize*pageCount bytes.
func OpenFileDevice(path string, pageSize, pageCount int) (*FileDevice, error) {
	size := int64(pageSize * pageCount)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	switch {
	case info.Size() == 0:
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, err
		}
	case info.Size() != size:
		f.Close()
		return nil, errors.Join(ErrOutOfRange, errors.New("image size does not match device geometry"))
	}

	return &FileDevice{f: f, pageSize: pageSize, pageCount: pageCount}, nil
}

// PageSize returns the fixed page size in bytes.
func (d *FileDevice) PageSize() int { return d.pageSize }

// PageCount returns the number of pages on the device.
func (d *FileDevice) PageCount() int { return d.pageCount }

// ReadPage fills buf with the contents of the given page.
func (d *FileDevice) ReadPage(page int, buf []byte) error {
	if d.f == nil {
		return ErrClosed
	}
	if len(buf) != d.pageSize {
		return ErrPageSize
	}
	if page < 0 || page >= d.pageCount {
		return ErrOutOfRange
	}
	_, err := d.f.ReadAt(buf, int64(page*d.pageSize))
	return err
}

// WritePage persists data to the given page and syncs the file.
func (d *FileDevice) WritePage(page int, data []byte) error {
	if d.f == nil {
		return ErrClosed
	}
	if len(data) != d.pageSize {
		return ErrPageSize
	}
	if page < 0 || page >= d.pageCount {
		return ErrOutOfRange
	}
	if _, err := d.f.WriteAt(data, int64(page*d.pageSize)); err != nil {
		return err
	}
	return d.f.Sync()
}

// Close releases the underlying file. Further operations return ErrClosed.
func (d *FileDevice) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
