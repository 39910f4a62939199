// Package testing provides test doubles for the serialport package.
package testing

import (
	"sync"
	"time"
)

// FakePort is an in-memory serial port. Reads deliver whatever bytes have
// been fed; when nothing is pending a read returns zero bytes immediately,
// which is how a real port behaves when its read timeout expires.
type FakePort struct {
	mu      sync.Mutex
	pending []byte
	written []byte

	// ReadErr, when set, is returned by the next Read.
	ReadErr error
	// WriteErr, when set, is returned by every Write.
	WriteErr error

	// Flushed counts ResetInputBuffer calls.
	Flushed int
	// CloseCount counts Close calls; used to assert double-close safety
	// and that rejected candidates do not leak handles.
	CloseCount int

	readTimeout time.Duration
}

// NewFakePort creates a port preloaded with the given lines, each
// terminated with "\n".
func NewFakePort(lines ...string) *FakePort {
	p := &FakePort{}
	for _, line := range lines {
		p.Feed(line + "\n")
	}
	return p
}

// Feed appends raw bytes to the pending read data.
func (p *FakePort) Feed(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, s...)
}

// Read delivers pending bytes, or zero bytes when none remain.
func (p *FakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ReadErr != nil {
		err := p.ReadErr
		p.ReadErr = nil
		return 0, err
	}
	if len(p.pending) == 0 {
		return 0, nil
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// Write records the bytes for later inspection via Written.
func (p *FakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WriteErr != nil {
		return 0, p.WriteErr
	}
	p.written = append(p.written, b...)
	return len(b), nil
}

// Written returns everything written to the port.
func (p *FakePort) Written() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.written)
}

// Close is safe to call any number of times.
func (p *FakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CloseCount++
	return nil
}

// Closed reports whether Close has been called at least once.
func (p *FakePort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CloseCount > 0
}

// SetReadTimeout records the requested timeout. The fake never blocks, so
// the value only matters for assertions.
func (p *FakePort) SetReadTimeout(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readTimeout = d
	return nil
}

// ReadTimeout returns the last timeout set on the port.
func (p *FakePort) ReadTimeout() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readTimeout
}

// ResetInputBuffer discards all pending read data.
func (p *FakePort) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
	p.Flushed++
	return nil
}

// Pending returns how many unread bytes remain.
func (p *FakePort) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
