package accountdb

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// On-storage layout. All multi-byte integers are big-endian. This layout is
// stable across firmware versions for a given device; changing it requires a
// destructive reformat and a version bump.
//
// Header, bytes 0..31:
//
//	0..3   magic "TOTP"
//	4      version (0x01)
//	5..27  reserved, zero
//	28..31 CRC-32/IEEE over bytes 0..27
//
// Slot record i (1..4), 64 bytes at offset 32 + (i-1)*64:
//
//	0      occupied flag: 0xFF occupied, 0x00 empty
//	1..8   label, NUL padded
//	9      secret length (1..32)
//	10..27 reserved, zero
//	28..59 secret, zero padded
//	60..63 CRC-32/IEEE over bytes 0..59
const (
	// MaxSlots is the number of account slots, one per physical key.
	MaxSlots = 4
	// LabelSize is the fixed maximum label length in bytes.
	LabelSize = 8
	// MaxSecretLen is the fixed maximum decoded secret length in bytes.
	MaxSecretLen = 32

	// MinCapacity is the smallest device the layout fits on.
	MinCapacity = headerSize + MaxSlots*recordSize

	headerSize = 32
	recordSize = 64

	magic   = "TOTP"
	version = 0x01

	occupiedMark = 0xFF
	emptyMark    = 0x00

	labelOff     = 1
	secretLenOff = 9
	secretOff    = 28
	recordCRCOff = 60
	headerCRCOff = 28
)

// recordOffset returns the byte offset of the record for slot (1-based).
func recordOffset(slot int) int {
	return headerSize + (slot-1)*recordSize
}

// encodeHeader renders a fresh header page.
func encodeHeader() []byte {
	buf := make([]byte, headerSize)
	copy(buf, magic)
	buf[4] = version
	binary.BigEndian.PutUint32(buf[headerCRCOff:], crc32.ChecksumIEEE(buf[:headerCRCOff]))
	return buf
}

// checkHeader reports whether buf is a valid formatted header.
func checkHeader(buf []byte) bool {
	if len(buf) != headerSize {
		return false
	}
	if string(buf[:4]) != magic || buf[4] != version {
		return false
	}
	return binary.BigEndian.Uint32(buf[headerCRCOff:]) == crc32.ChecksumIEEE(buf[:headerCRCOff])
}

// encodeRecord renders an occupied slot record. Inputs must already be within
// bounds.
func encodeRecord(label string, secret []byte) []byte {
	buf := make([]byte, recordSize)
	buf[0] = occupiedMark
	copy(buf[labelOff:labelOff+LabelSize], label)
	buf[secretLenOff] = byte(len(secret))
	copy(buf[secretOff:secretOff+MaxSecretLen], secret)
	binary.BigEndian.PutUint32(buf[recordCRCOff:], crc32.ChecksumIEEE(buf[:recordCRCOff]))
	return buf
}

// decodeRecord parses a raw slot record. It returns the label and a copy of
// the secret bytes for an occupied record, occupied=false for a well-formed
// empty record, and ok=false when the record fails its integrity check.
func decodeRecord(buf []byte) (label string, secret []byte, occupied, ok bool) {
	if len(buf) != recordSize {
		return "", nil, false, false
	}

	switch buf[0] {
	case emptyMark:
		// An empty slot must be fully zeroed; anything else means the
		// occupied flag itself was damaged.
		if !bytes.Equal(buf, make([]byte, recordSize)) {
			return "", nil, false, false
		}
		return "", nil, false, true

	case occupiedMark:
		if binary.BigEndian.Uint32(buf[recordCRCOff:]) != crc32.ChecksumIEEE(buf[:recordCRCOff]) {
			return "", nil, false, false
		}
		n := int(buf[secretLenOff])
		if n < 1 || n > MaxSecretLen {
			return "", nil, false, false
		}
		secret = make([]byte, n)
		copy(secret, buf[secretOff:secretOff+n])
		return trimLabel(buf[labelOff : labelOff+LabelSize]), secret, true, true

	default:
		return "", nil, false, false
	}
}

// trimLabel strips the NUL padding from a fixed-width label field.
func trimLabel(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}
