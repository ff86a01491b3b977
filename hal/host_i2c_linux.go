//go:build !tinygo && linux

package hal

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

type periphPanel struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// openI2CPanel attaches an SSD1306 on a Linux I²C bus ("" picks the first).
func openI2CPanel(cfg HostConfig) (i2cPanel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hal: periph init: %w", err)
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("hal: open i2c %q: %w", cfg.I2CBus, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = cfg.Width
	opts.H = cfg.Height
	opts.Rotated = cfg.Rotated
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("hal: ssd1306: %w", err)
	}
	return &periphPanel{bus: bus, dev: dev}, nil
}

// Present writes the whole framebuffer; the driver only sends changed pages.
func (p *periphPanel) Present(_, _, _, _ int, fb []byte) error {
	if _, err := p.dev.Write(fb); err != nil {
		return err
	}
	return nil
}

func (p *periphPanel) Close() error {
	err := p.dev.Halt()
	if cerr := p.bus.Close(); err == nil {
		err = cerr
	}
	return err
}
