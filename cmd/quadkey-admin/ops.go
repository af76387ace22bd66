package main

import (
	"fmt"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/quadkey/quadkey/core/accountdb"
	"github.com/quadkey/quadkey/core/hotp"
	"github.com/quadkey/quadkey/core/rtc"
	"github.com/quadkey/quadkey/pkg/otpauth"
)

func (s *shell) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *shell) promptSlot(tag string) (int, error) {
	msg := "Enter slot number (1-4): "
	if tag != "" {
		msg = tag + ": " + msg
	}
	line, err := s.prompt(msg)
	if err != nil {
		return 0, err
	}
	slot, err := strconv.Atoi(line)
	if err != nil {
		return 0, accountdb.ErrInvalidSlot
	}
	return slot, nil
}

// confirmOverwrite asks before replacing an occupied slot. A formatted check
// already happened by the time this is called.
func (s *shell) confirmOverwrite(slot int) (bool, error) {
	_, occupied, err := s.db.ReadSlot(slot)
	if err != nil {
		return false, err
	}
	if !occupied {
		return true, nil
	}
	yn, err := s.prompt("Slot is in use. Overwrite? (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(yn, "y"), nil
}

func (s *shell) add() error {
	slot, err := s.promptSlot("")
	if err != nil {
		return err
	}
	ok, err := s.confirmOverwrite(slot)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Operation canceled.")
		return nil
	}

	label, err := s.prompt("Enter label (max 8 chars): ")
	if err != nil {
		return err
	}
	uri, err := s.prompt("Enter otpauth:// URI: ")
	if err != nil {
		return err
	}

	params, err := otpauth.Parse(uri)
	if err != nil {
		return err
	}
	defer params.Wipe()

	if label == "" {
		label = params.Label
	}
	if err := s.db.WriteSlot(slot, label, params.Secret); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Record added to slot %d.\n", slot)
	return nil
}

func (s *shell) copy() error {
	src, err := s.promptSlot("Source")
	if err != nil {
		return err
	}
	dst, err := s.promptSlot("Destination")
	if err != nil {
		return err
	}
	ok, err := s.confirmOverwrite(dst)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Operation canceled.")
		return nil
	}

	if err := s.db.CopySlot(src, dst); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Account copied from slot %d to slot %d.\n", src, dst)
	return nil
}

func (s *shell) erase() error {
	slot, err := s.promptSlot("")
	if err != nil {
		return err
	}
	if err := s.db.EraseSlot(slot); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Slot %d has been erased.\n", slot)
	return nil
}

func (s *shell) format() error {
	yn, err := s.prompt("Are you sure? This will erase all data. (y/n): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(yn, "y") {
		fmt.Fprintln(s.out, "Operation canceled.")
		return nil
	}
	if err := s.db.Format(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Device formatted.")
	return nil
}

func (s *shell) list() error {
	infos, err := s.db.ListSlots()
	if err != nil {
		return err
	}
	for _, info := range infos {
		switch {
		case info.Corrupt:
			fmt.Fprintf(s.out, "Slot %d: ** corrupt **\n", info.Slot)
		case info.Occupied:
			fmt.Fprintf(s.out, "Slot %d: '%s'\n", info.Slot, info.Label)
		default:
			fmt.Fprintf(s.out, "Slot %d: -- empty --\n", info.Slot)
		}
	}
	return nil
}

func (s *shell) code() error {
	slot, err := s.promptSlot("")
	if err != nil {
		return err
	}
	rec, occupied, err := s.db.ReadSlot(slot)
	if err != nil {
		return err
	}
	if !occupied {
		fmt.Fprintf(s.out, "Slot %d: -- empty --\n", slot)
		return nil
	}
	defer rec.Wipe()

	now, err := s.clock.Now()
	if err != nil {
		return err
	}
	code, err := hotp.DeriveTOTP(rec.Secret, uint64(now), hotp.Period, hotp.Digits)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s  %d %s  %s\n", rtc.Format(now), rec.Slot, rec.Label, code)
	return nil
}

func (s *shell) export() error {
	slot, err := s.promptSlot("")
	if err != nil {
		return err
	}
	rec, occupied, err := s.db.ReadSlot(slot)
	if err != nil {
		return err
	}
	if !occupied {
		fmt.Fprintf(s.out, "Slot %d: -- empty --\n", slot)
		return nil
	}
	defer rec.Wipe()

	params := otpauth.Params{Label: rec.Label, Secret: rec.Secret}
	uri := params.URI()

	qr, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, uri)
	fmt.Fprint(s.out, qr.ToSmallString(false))
	return nil
}

func (s *shell) getTime() error {
	now, err := s.clock.Now()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, rtc.Format(now), "UTC")
	return nil
}

func (s *shell) setTime() error {
	fields := []string{"   year", "  month", "    day", "   hour", " minute", "seconds"}
	vals := make([]int, len(fields))
	for i, name := range fields {
		line, err := s.prompt(name + ": ")
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("bad value for %s: %w", strings.TrimSpace(name), err)
		}
		vals[i] = v
	}

	epoch := rtc.FromCivil(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	if err := s.clock.Set(epoch); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "New clock time:", rtc.Format(epoch), "UTC")
	return nil
}
