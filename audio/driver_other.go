//go:build !windows

package audio

import "time"

func openHardware(m *Mux, bufferSize time.Duration) (driver, error) {
	return nil, errDeviceNotFound
}
