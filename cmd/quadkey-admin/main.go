// Command quadkey-admin is the management console for a quadkey device
// image: provisioning, slot maintenance and clock checks over a file-backed
// storage device. All logic lives in the library packages; this binary only
// prompts, confirms and prints.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/quadkey/quadkey/core/accountdb"
	"github.com/quadkey/quadkey/core/eeprom"
	"github.com/quadkey/quadkey/core/rtc"
	"github.com/quadkey/quadkey/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.slogLevel()})).
		With(logger.Component("admin"))

	dev, err := eeprom.OpenFileDevice(cfg.ImagePath, cfg.PageSize, cfg.PageCount)
	if err != nil {
		return err
	}
	defer dev.Close()

	db, err := accountdb.New(eeprom.NewAdapter(dev))
	if err != nil {
		return err
	}

	log.Debug("image opened",
		slog.String("path", cfg.ImagePath),
		slog.Int("capacity", cfg.PageSize*cfg.PageCount))

	sh := &shell{
		db:    db,
		clock: rtc.NewMemSource(time.Now().Unix()),
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		log:   log,
	}
	return sh.menuLoop()
}

// shell holds the wired components for one admin run.
type shell struct {
	db    *accountdb.DB
	clock rtc.Source
	in    *bufio.Reader
	out   *os.File
	log   *slog.Logger
}

func (s *shell) menuLoop() error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Available operations:")
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, " 1. add      - Add a TOTP account from an otpauth:// URI.")
		fmt.Fprintln(s.out, " 2. copy     - Copy an account to another slot.")
		fmt.Fprintln(s.out, " 3. erase    - Erase an account slot.")
		fmt.Fprintln(s.out, " 4. format   - Format the device (erases everything).")
		fmt.Fprintln(s.out, " 5. list     - List account slots.")
		fmt.Fprintln(s.out, " 6. code     - Show the current code for a slot.")
		fmt.Fprintln(s.out, " 7. export   - Show a provisioning QR code for a slot.")
		fmt.Fprintln(s.out, " 8. get-time - Show the clock.")
		fmt.Fprintln(s.out, " 9. set-time - Set the clock (UTC).")
		fmt.Fprintln(s.out)

		choice, err := s.prompt("Choose an operation by number (or Enter to quit): ")
		if err != nil {
			return nil // EOF ends the session
		}
		if choice == "" {
			return nil
		}

		if err := s.dispatch(choice); err != nil {
			s.log.Error("operation failed", logger.Error(err))
			fmt.Fprintln(s.out, "ERROR:", err)
		}
	}
}

func (s *shell) dispatch(choice string) error {
	switch choice {
	case "1", "add":
		return s.add()
	case "2", "copy":
		return s.copy()
	case "3", "erase":
		return s.erase()
	case "4", "format":
		return s.format()
	case "5", "list":
		return s.list()
	case "6", "code":
		return s.code()
	case "7", "export":
		return s.export()
	case "8", "get-time":
		return s.getTime()
	case "9", "set-time":
		return s.setTime()
	default:
		return fmt.Errorf("unknown operation: %s", choice)
	}
}
