// Package store persists accepted samples to a session-scoped CSV file.
// Durability wins over throughput: every row is forced to stable storage
// before Append returns, so a crash immediately afterwards loses nothing.
package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/werdumagen/thermolog/internal/errors"
)

// FileTimeLayout names the session file after its start time.
const FileTimeLayout = "2006-01-02_15-04-05"

// RowTimeLayout is the full-precision timestamp written per row.
const RowTimeLayout = "2006-01-02 15:04:05.000"

// header is the fixed two-column header, first row of every session file.
var header = []string{"System Time", "Temperature"}

// CSVLog is an append-only session log. One instance exists per run, owned
// by the ingestion path; Close is safe to call more than once.
type CSVLog struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	path   string
	closed bool
	rows   int
}

// Open creates the session file `<start>.csv` in dir (the working directory
// when dir is empty), writes the header, and syncs it to disk before
// returning. The start time makes the name unique per run; an existing file
// with the same name is an error rather than silently overwritten.
func Open(dir string, start time.Time) (*CSVLog, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrStore,
				"Cannot create log directory "+dir,
				"Check the log_dir path and its permissions")
		}
	}

	path := filepath.Join(dir, start.Format(FileTimeLayout)+".csv")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot create session log "+path,
			"Check disk space and directory permissions")
	}

	l := &CSVLog{
		file:   f,
		writer: csv.NewWriter(f),
		path:   path,
	}

	if err := l.writeRow(header); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}

	return l, nil
}

// Path returns the session file path.
func (l *CSVLog) Path() string {
	return l.path
}

// Rows returns the number of data rows appended so far.
func (l *CSVLog) Rows() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows
}

// Append writes one sample row and forces it to stable storage. A failure
// here defeats the entire point of the recorder, so it is surfaced to the
// caller rather than swallowed.
func (l *CSVLog) Append(ts time.Time, value float64) error {
	err := l.writeRow([]string{
		ts.Format(RowTimeLayout),
		strconv.FormatFloat(value, 'f', -1, 64),
	})
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.rows++
	l.mu.Unlock()
	return nil
}

// Close flushes and closes the session file. Idempotent: closing an already
// closed log is a no-op.
func (l *CSVLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	l.writer.Flush()
	flushErr := l.writer.Error()
	closeErr := l.file.Close()

	if flushErr != nil {
		return errors.WrapWithCode(flushErr, errors.ErrStore,
			"Failed flushing session log "+l.path, "")
	}
	if closeErr != nil {
		return errors.WrapWithCode(closeErr, errors.ErrStore,
			"Failed closing session log "+l.path, "")
	}
	return nil
}

// writeRow writes one CSV record, flushes it through the csv writer, and
// fsyncs the file.
func (l *CSVLog) writeRow(record []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return errors.New(errors.ErrStore,
			"Session log already closed",
			"")
	}

	if err := l.writer.Write(record); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Cannot append to session log "+l.path,
			"Check disk space and permissions")
	}
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Cannot append to session log "+l.path,
			"Check disk space and permissions")
	}
	if err := l.file.Sync(); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Cannot sync session log "+l.path+" to disk",
			"Check disk space and permissions")
	}
	return nil
}
