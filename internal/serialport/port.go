// Package serialport wraps the host serial layer behind a small interface so
// that discovery and ingestion can run against in-memory fakes in tests.
package serialport

import (
	"errors"
	"io"
	"time"

	"go.bug.st/serial"
)

// Port is the surface of an open serial connection used by discovery and
// ingestion. A zero read after SetReadTimeout means no data arrived within
// the timeout, not end of stream.
type Port interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds how long a single Read may block.
	SetReadTimeout(d time.Duration) error

	// ResetInputBuffer discards bytes received but not yet read. Used to
	// drop stale data left over from a previous session.
	ResetInputBuffer() error
}

// Opener opens a named port at the given baud rate. Discovery takes one of
// these so probing can be exercised without hardware.
type Opener func(name string, baud int) (Port, error)

// Lister enumerates the port names the host reports.
type Lister func() ([]string, error)

// Open opens a real serial port in 8N1 mode at the given baud rate.
func Open(name string, baud int) (Port, error) {
	return serial.Open(name, &serial.Mode{BaudRate: baud})
}

// List returns the serial port names the operating system reports.
func List() ([]string, error) {
	return serial.GetPortsList()
}

// IsBusy reports whether err means the port exists but cannot be opened
// right now (held by another process, or permission denied). During
// discovery this is an ordinary rejection, not a fault.
func IsBusy(err error) bool {
	var pe *serial.PortError
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Code() {
	case serial.PortBusy, serial.PermissionDenied:
		return true
	}
	return false
}

// IsNotFound reports whether err means the named port does not exist.
func IsNotFound(err error) bool {
	var pe *serial.PortError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code() == serial.PortNotFound
}
