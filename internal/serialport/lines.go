package serialport

import (
	"bytes"
	"strings"
)

// readChunk is the per-Read buffer size. Sensor lines are a handful of
// bytes, so one chunk comfortably holds many of them.
const readChunk = 512

// LineReader splits a port's byte stream into newline-delimited lines,
// carrying partial lines across reads. Reads honor whatever read timeout
// the underlying port was configured with; a timed-out read delivers zero
// bytes and is not an error.
type LineReader struct {
	port     Port
	carry    []byte
	received int64
}

// NewLineReader wraps an open port.
func NewLineReader(p Port) *LineReader {
	return &LineReader{port: p}
}

// ReadLine returns the next complete line, reading from the port as needed.
// ok is false when no complete line arrived before a read timed out. The
// returned line has its terminator removed but is otherwise raw.
func (r *LineReader) ReadLine() (line string, ok bool, err error) {
	for {
		if line, ok := r.popLine(); ok {
			return line, true, nil
		}

		buf := make([]byte, readChunk)
		n, err := r.port.Read(buf)
		if n > 0 {
			r.received += int64(n)
			r.carry = append(r.carry, buf[:n]...)
		}
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			// Read timeout expired with nothing new.
			return "", false, nil
		}
	}
}

// Drain reads everything currently available and returns all complete lines.
// It stops as soon as a read delivers no data, so with a short read timeout
// it never stalls the caller's tick. A trailing partial line is kept for the
// next call.
func (r *LineReader) Drain() ([]string, error) {
	var lines []string
	for {
		for {
			line, ok := r.popLine()
			if !ok {
				break
			}
			lines = append(lines, line)
		}

		buf := make([]byte, readChunk)
		n, err := r.port.Read(buf)
		if n > 0 {
			r.received += int64(n)
			r.carry = append(r.carry, buf[:n]...)
		}
		if err != nil {
			return lines, err
		}
		if n == 0 {
			return lines, nil
		}
	}
}

// Received returns the total number of bytes pulled from the port. Discovery
// uses this to tell "silent port" apart from "port sending garbage".
func (r *LineReader) Received() int64 {
	return r.received
}

// popLine removes and returns the first complete line in the carry buffer.
func (r *LineReader) popLine() (string, bool) {
	i := bytes.IndexByte(r.carry, '\n')
	if i < 0 {
		return "", false
	}
	line := string(r.carry[:i])
	r.carry = r.carry[i+1:]
	return strings.TrimSuffix(line, "\r"), true
}
