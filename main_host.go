//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"oledwire/app"
	"oledwire/hal"
	"oledwire/internal/logging"
)

func main() {
	cfg := app.DefaultConfig()
	host := hal.DefaultHostConfig()
	var headless hal.HeadlessConfig
	var scale int
	var level string

	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&scale, "scale", 4, "Window pixels per panel pixel.")
	flag.BoolVar(&cfg.TangentFOV, "tangent-fov", false, "Use tangent-based perspective (fov in degrees).")
	flag.StringVar(&level, "log-level", "info", "Log level: debug, info, warn, error.")
	flag.StringVar(&host.Panel, "panel", host.Panel, "Panel backend: sim or i2c.")
	flag.StringVar(&host.I2CBus, "i2c-bus", "", "I²C bus name for -panel=i2c (empty = first).")
	flag.BoolVar(&host.Rotated, "rotated", false, "Mirror the panel on both axes.")
	flag.Parse()

	l, err := logging.ParseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.LogLevel = l
	host.Width, host.Height = cfg.Width, cfg.Height

	if headless.Enabled {
		headless.Host = host
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app.Factory(cfg), headless); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(app.Factory(cfg), hal.WindowConfig{Scale: scale, Host: host}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
