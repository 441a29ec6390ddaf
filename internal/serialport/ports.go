// Package serialport enumerates serial ports for upload port selection.
package serialport

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// Info holds details about one serial port.
type Info struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
}

// List returns the available serial ports.
func List() ([]Info, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	var result []Info
	for _, p := range ports {
		result = append(result, Info{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
		})
	}
	return result, nil
}

// FindPort picks a port for uploading when none was specified: the first
// USB serial port, since development boards enumerate over USB.
func FindPort() (string, error) {
	ports, err := List()
	if err != nil {
		return "", err
	}

	for _, p := range ports {
		if p.IsUSB {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("no USB serial port found; specify one with --port")
}
