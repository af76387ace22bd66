package accountdb

import (
	"errors"

	"github.com/quadkey/quadkey/core/eeprom"
)

// Record is a provisioned account slot. Secret is a private copy owned by the
// caller; call Wipe as soon as the derivation that needed it has finished.
type Record struct {
	Slot   int
	Label  string
	Secret []byte
}

// Wipe zeroes the secret bytes in place.
func (r *Record) Wipe() {
	for i := range r.Secret {
		r.Secret[i] = 0
	}
}

// SlotInfo describes a slot for display and menus. It never carries secret
// material.
type SlotInfo struct {
	Slot     int
	Occupied bool
	Corrupt  bool
	Label    string
}

// DB is the account database over an EEPROM-class storage adapter. It owns
// the durable record bytes exclusively; it is touched only on the management
// path, never while codes are being displayed, so no locking is needed
// between the two modes.
type DB struct {
	st *eeprom.Adapter
}

// New creates a database over st. The device must have room for the header
// and all four slot records.
func New(st *eeprom.Adapter) (*DB, error) {
	if st.Capacity() < MinCapacity {
		return nil, ErrDeviceTooSmall
	}
	return &DB{st: st}, nil
}

// Format destructively initializes the device: every slot record is zeroed
// and a fresh header is written last, so an interrupted format leaves the
// device unformatted rather than half-valid. Idempotent.
func (db *DB) Format() error {
	empty := make([]byte, recordSize)
	for slot := 1; slot <= MaxSlots; slot++ {
		if err := db.st.WriteRange(recordOffset(slot), empty); err != nil {
			return errors.Join(ErrStorageFault, err)
		}
	}
	if err := db.st.WriteRange(0, encodeHeader()); err != nil {
		return errors.Join(ErrStorageFault, err)
	}
	return nil
}

// WriteSlot serializes label and secret into the given slot and marks it
// occupied, replacing any prior record. The record's trailing pages are
// written before the page holding the occupied flag, so a power loss mid-
// write is detected as Corrupt instead of yielding a plausible wrong secret.
func (db *DB) WriteSlot(slot int, label string, secret []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if len(label) > LabelSize {
		return errors.Join(ErrInvalidInput, errors.New("label exceeds 8 bytes"))
	}
	if len(secret) == 0 {
		return errors.Join(ErrInvalidInput, errors.New("secret is empty"))
	}
	if len(secret) > MaxSecretLen {
		return errors.Join(ErrInvalidInput, errors.New("secret exceeds 32 bytes"))
	}
	if err := db.checkFormatted(); err != nil {
		return err
	}

	buf := encodeRecord(label, secret)
	defer wipe(buf)

	if err := db.st.WriteRange(recordOffset(slot), buf); err != nil {
		return errors.Join(ErrStorageFault, err)
	}
	return nil
}

// ReadSlot returns the record stored in slot. occupied is false for a
// well-formed empty slot. An occupied slot that fails its integrity check
// returns ErrCorrupt and no secret bytes.
func (db *DB) ReadSlot(slot int) (rec Record, occupied bool, err error) {
	if err := checkSlot(slot); err != nil {
		return Record{}, false, err
	}
	if err := db.checkFormatted(); err != nil {
		return Record{}, false, err
	}

	buf := make([]byte, recordSize)
	defer wipe(buf)
	if err := db.st.ReadRange(recordOffset(slot), buf); err != nil {
		return Record{}, false, errors.Join(ErrStorageFault, err)
	}

	label, secret, occupied, ok := decodeRecord(buf)
	if !ok {
		return Record{}, false, ErrCorrupt
	}
	if !occupied {
		return Record{}, false, nil
	}
	return Record{Slot: slot, Label: label, Secret: secret}, true, nil
}

// EraseSlot zeroes the slot's record and marks it empty.
func (db *DB) EraseSlot(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := db.checkFormatted(); err != nil {
		return err
	}
	if err := db.st.WriteRange(recordOffset(slot), make([]byte, recordSize)); err != nil {
		return errors.Join(ErrStorageFault, err)
	}
	return nil
}

// CopySlot duplicates the record in src into dst. The source must be occupied
// and valid.
func (db *DB) CopySlot(src, dst int) error {
	if err := checkSlot(src); err != nil {
		return err
	}
	if err := checkSlot(dst); err != nil {
		return err
	}

	rec, occupied, err := db.ReadSlot(src)
	if err != nil {
		return err
	}
	if !occupied {
		return errors.Join(ErrInvalidInput, errors.New("source slot is empty"))
	}
	defer rec.Wipe()

	return db.WriteSlot(dst, rec.Label, rec.Secret)
}

// ListSlots reports occupied/empty state and labels for all four slots. It
// never returns secret material, so the result is safe to log or print.
// Individually damaged slots are flagged Corrupt; they do not fail the list.
func (db *DB) ListSlots() ([]SlotInfo, error) {
	if err := db.checkFormatted(); err != nil {
		return nil, err
	}

	infos := make([]SlotInfo, 0, MaxSlots)
	buf := make([]byte, recordSize)
	defer wipe(buf)

	for slot := 1; slot <= MaxSlots; slot++ {
		if err := db.st.ReadRange(recordOffset(slot), buf); err != nil {
			return nil, errors.Join(ErrStorageFault, err)
		}
		label, secret, occupied, ok := decodeRecord(buf)
		wipe(secret)
		switch {
		case !ok:
			infos = append(infos, SlotInfo{Slot: slot, Occupied: true, Corrupt: true})
		case occupied:
			infos = append(infos, SlotInfo{Slot: slot, Occupied: true, Label: label})
		default:
			infos = append(infos, SlotInfo{Slot: slot})
		}
	}
	return infos, nil
}

// Formatted reports whether the device carries a valid database header.
func (db *DB) Formatted() bool {
	return db.checkFormatted() == nil
}

// checkFormatted validates the header; any read before a successful Format,
// or after header damage, refuses to yield records.
func (db *DB) checkFormatted() error {
	buf := make([]byte, headerSize)
	if err := db.st.ReadRange(0, buf); err != nil {
		return errors.Join(ErrStorageFault, err)
	}
	if !checkHeader(buf) {
		return ErrUnformatted
	}
	return nil
}

func checkSlot(slot int) error {
	if slot < 1 || slot > MaxSlots {
		return ErrInvalidSlot
	}
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
