// Package accountdb stores up to four TOTP account records in a small
// page-addressed non-volatile storage device.
//
// Slot indices 1..4 are the stable identity of an account and map one-to-one
// to the device's physical keys. The database is written only during
// provisioning and management; the normal code-display path only reads, which
// keeps latency low and avoids wearing out the EEPROM's limited write cycles.
//
// Every record and the header carry a CRC-32 integrity field. A device is
// either formatted (header check passes) or refuses to yield secrets; an
// occupied record whose check fails is reported as ErrCorrupt, never as
// partially-valid secret bytes.
//
// # Usage
//
//	st := eeprom.NewAdapter(eeprom.NewMemDevice(32, 128))
//	db, err := accountdb.New(st)
//	if err != nil {
//		return err
//	}
//
//	if err := db.Format(); err != nil {
//		return err
//	}
//	if err := db.WriteSlot(1, "github", secret); err != nil {
//		return err
//	}
//
//	rec, occupied, err := db.ReadSlot(1)
//	if err != nil {
//		return err
//	}
//	if occupied {
//		defer rec.Wipe()
//		// derive a code from rec.Secret
//	}
//
// The on-storage byte layout is documented in layout.go and is stable for a
// given device; reformatting is destructive.
package accountdb
