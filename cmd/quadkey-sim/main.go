// Command quadkey-sim runs the full authenticator stack on a host: the
// account database over a file-backed device image, the wall clock as time
// source, and terminal stand-ins for the keypad, indicator lights and
// display. Type a key number (1-4) and press Enter to simulate a key press.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/quadkey/quadkey/core/accountdb"
	"github.com/quadkey/quadkey/core/eeprom"
	"github.com/quadkey/quadkey/core/rtc"
	"github.com/quadkey/quadkey/core/session"
	"github.com/quadkey/quadkey/pkg/logger"
)

type config struct {
	ImagePath string `env:"QUADKEY_IMAGE" envDefault:"quadkey.img"`
	PageSize  int    `env:"QUADKEY_PAGE_SIZE" envDefault:"32"`
	PageCount int    `env:"QUADKEY_PAGE_COUNT" envDefault:"128"`
}

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	dev, err := eeprom.OpenFileDevice(cfg.ImagePath, cfg.PageSize, cfg.PageCount)
	if err != nil {
		return err
	}
	defer dev.Close()

	db, err := accountdb.New(eeprom.NewAdapter(dev))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	keys := &lineKeypad{}
	go keys.readLines(stop)

	log := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(logger.Component("session"))
	ctrl := session.New(db, rtc.SystemSource{}, keys, termLights{}, &termDisplay{}, session.WithLogger(log))
	return ctrl.Run(ctx)
}

// lineKeypad turns stdin lines into key-down edges.
type lineKeypad struct {
	mu    sync.Mutex
	queue []session.KeyEvent
}

func (k *lineKeypad) readLines(stop func()) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			continue
		}
		k.mu.Lock()
		k.queue = append(k.queue, session.KeyEvent{Key: n, Pressed: true})
		k.mu.Unlock()
	}
	stop() // EOF ends the simulation
}

func (k *lineKeypad) Events() []session.KeyEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	evs := k.queue
	k.queue = nil
	return evs
}

// termLights prints indicator changes.
type termLights struct{}

func (termLights) Set(key int, state session.Light) {
	var s string
	switch state {
	case session.LightOn:
		s = "on"
	case session.LightError:
		s = "ERROR"
	default:
		return // keep quiet about lights turning off
	}
	fmt.Printf("[led %d: %s]\n", key, s)
}

// termDisplay prints the display contents as a bordered block.
type termDisplay struct {
	backlight bool
}

func (d *termDisplay) SetBacklight(on bool) {
	if on != d.backlight {
		if on {
			fmt.Println("[backlight on]")
		} else {
			fmt.Println("[backlight off]")
		}
	}
	d.backlight = on
}

func (d *termDisplay) SetText(text string) {
	if text == "" {
		return
	}
	fmt.Println("+------------------------+")
	for _, line := range strings.Split(text, "\n") {
		fmt.Printf("| %-22s |\n", line)
	}
	fmt.Println("+------------------------+")
}
