// Package eeprom adapts a page-addressed non-volatile storage device to the
// byte-range access the account database needs.
//
// The Device interface is the thin collaborator boundary for real hardware
// drivers (for example a 4KB 24LC32-class I2C EEPROM with 32-byte pages).
// Two implementations ship with the package: MemDevice for tests and
// FileDevice for editing device images on a host.
//
// # Usage
//
//	dev := eeprom.NewMemDevice(32, 128) // 4KB, 32-byte pages
//	st := eeprom.NewAdapter(dev)
//
//	buf := make([]byte, 64)
//	if err := st.ReadRange(32, buf); err != nil {
//		return err
//	}
//
// Writes are verified by read-back unless disabled with
// WithReadBackVerify(false). Multi-page writes land highest page first; see
// Adapter.WriteRange for why the account database depends on that order.
package eeprom
