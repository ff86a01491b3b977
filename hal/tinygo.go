//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// Panel wiring. The module sits upside down in the enclosure, so both axes
// are mirrored in the controller.
const (
	panelAddress  = 0x3C
	panelWidth    = 128
	panelHeight   = 64
	panelI2CHz    = 400_000
	panelRotation = drivers.Rotation180
)

type tinyGoHAL struct {
	logger  *uartLogger
	panel   *ssdPanel
	timer   *tinyGoTimer
	sensors *tinyGoSensors
}

// New returns a Pico (RP2040/RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Panel: SSD1306 on I2C0 (GP4 SDA / GP5 SCL) at 0x3C, 400 kHz.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: panelI2CHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		logger.WriteLineString("hal: i2c configure: " + err.Error())
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address:  panelAddress,
		Width:    panelWidth,
		Height:   panelHeight,
		Rotation: panelRotation,
	})
	dev.ClearDisplay()

	return &tinyGoHAL{
		logger:  logger,
		panel:   newSSDPanel(dev, panelWidth, panelHeight),
		timer:   &tinyGoTimer{},
		sensors: &tinyGoSensors{temp: readDieTemperature},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Panel() Panel     { return h.panel }
func (h *tinyGoHAL) Timer() Timer     { return h.timer }
func (h *tinyGoHAL) Sensors() Sensors { return h.sensors }

func readDieTemperature() float32 {
	return float32(machine.ReadTemperature()) / 1000
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// ssdPanel presents through the TinyGo SSD1306 driver. The driver owns its
// own buffer; each present copies the page-layout frame into it and sends
// the whole screen.
type ssdPanel struct {
	dev  *ssd1306.Device
	w, h int
}

func newSSDPanel(dev *ssd1306.Device, w, h int) *ssdPanel {
	return &ssdPanel{dev: dev, w: w, h: h}
}

func (p *ssdPanel) Width() int  { return p.w }
func (p *ssdPanel) Height() int { return p.h }

func (p *ssdPanel) Present(_, _, _, _ int, fb []byte) error {
	if err := p.dev.SetBuffer(fb); err != nil {
		return err
	}
	return p.dev.Display()
}
