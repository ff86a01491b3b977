//go:build tinygo

package main

import (
	"oledwire/app"
	"oledwire/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
