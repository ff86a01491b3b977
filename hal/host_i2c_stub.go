//go:build !tinygo && !linux

package hal

import "fmt"

func openI2CPanel(_ HostConfig) (i2cPanel, error) {
	return nil, fmt.Errorf("hal: i2c panel: %w", ErrNotImplemented)
}
