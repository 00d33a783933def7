// Package wal provides the append-only log writer.
//
// The writer owns one output target for its lifetime. Every Append
// writes exactly one statement and its terminator, then flushes and
// forces a durability barrier before returning: a statement is not
// committed until the barrier completes. The writer never seeks and
// never rewrites written bytes, so a crash can only leave a truncated
// trailing statement, never a corrupted earlier one.
package wal

import (
	"errors"
	"fmt"
	"strings"

	"log/slog"

	"github.com/signadot/laaos/debug"
)

// ErrClosedStore reports use of a writer (or its store) after Close.
var ErrClosedStore = errors.New("store is closed")

type Writer struct {
	t      Target
	closed bool
	lines  int64
	logger *slog.Logger
}

func NewWriter(t Target, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{t: t, logger: logger}
}

// Append writes one statement followed by its newline terminator,
// flushes, and syncs. A write, flush, or sync failure is fatal to the
// writer: it closes itself so the caller cannot mask the failure with
// further appends.
func (w *Writer) Append(stmt string) error {
	if w.closed {
		return ErrClosedStore
	}
	if strings.ContainsRune(stmt, '\n') {
		return fmt.Errorf("statement contains a record terminator: %q", stmt)
	}
	if _, err := w.t.Write([]byte(stmt + "\n")); err != nil {
		return w.fail("write", err)
	}
	if err := w.t.Flush(); err != nil {
		return w.fail("flush", err)
	}
	if err := w.t.Sync(); err != nil {
		return w.fail("sync", err)
	}
	w.lines++
	if debug.Wal() {
		debug.Logf("wal: committed %q\n", stmt)
	}
	return nil
}

func (w *Writer) fail(op string, err error) error {
	w.logger.Error("log append failed, closing store", "op", op, "err", err)
	w.closed = true
	_ = w.t.Close()
	return fmt.Errorf("log %s: %w", op, err)
}

// Appended returns the number of statements committed by this writer.
func (w *Writer) Appended() int64 {
	return w.lines
}

// Close flushes, syncs, and releases the target. It is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.t.Flush(); err != nil {
		_ = w.t.Close()
		return err
	}
	if err := w.t.Sync(); err != nil {
		_ = w.t.Close()
		return err
	}
	return w.t.Close()
}

func (w *Writer) Closed() bool {
	return w.closed
}
