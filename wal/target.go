package wal

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Mode selects how a log target is opened.
type Mode int

const (
	// CreateNew creates the log and fails if it already exists.
	CreateNew Mode = iota
	// Truncate creates the log or empties an existing one.
	Truncate
	// Append opens or creates the log and writes after its last
	// terminated statement. An unterminated trailing fragment left
	// by a crash is dropped before the first append.
	Append
)

func (m Mode) String() string {
	switch m {
	case CreateNew:
		return "create-new"
	case Truncate:
		return "truncate-existing"
	case Append:
		return "append-to-existing"
	}
	return "<unknown mode>"
}

// Target is the byte-stream a writer appends to. Flush pushes
// buffered bytes to the stream; Sync is the durability barrier. On
// targets with no real sync primitive the crash-safety property
// degrades to flush-only.
type Target interface {
	io.Writer
	Flush() error
	Sync() error
	Close() error
}

type fileTarget struct {
	f  *os.File
	bw *bufio.Writer
}

// OpenFile opens a log file target for the given mode.
func OpenFile(path string, mode Mode) (Target, error) {
	flags := os.O_WRONLY
	switch mode {
	case CreateNew:
		flags |= os.O_CREATE | os.O_EXCL
	case Truncate:
		flags |= os.O_CREATE | os.O_TRUNC
	case Append:
		flags |= os.O_CREATE | os.O_APPEND
		if err := dropPartialTail(path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid mode %d", mode)
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, err
	}
	return &fileTarget{f: f, bw: bufio.NewWriter(f)}, nil
}

// dropPartialTail removes an unterminated trailing fragment left by
// a crash mid-statement. Only bytes past the last record terminator
// go; a committed statement is never rewritten. Without this the
// first append would concatenate onto the fragment and produce an
// unreadable line.
func dropPartialTail(path string) error {
	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(d) == 0 || d[len(d)-1] == '\n' {
		return nil
	}
	n := bytes.LastIndexByte(d, '\n') + 1
	return os.Truncate(path, int64(n))
}

func (t *fileTarget) Write(d []byte) (int, error) {
	return t.bw.Write(d)
}

func (t *fileTarget) Flush() error {
	return t.bw.Flush()
}

func (t *fileTarget) Sync() error {
	return t.f.Sync()
}

func (t *fileTarget) Close() error {
	return t.f.Close()
}

type streamTarget struct {
	w io.Writer
}

// NewTarget adapts any io.Writer into a Target. Flush, Sync, and
// Close delegate when the writer implements them and are no-ops
// otherwise; such targets trade the sync barrier away, which is what
// in-memory log targets want.
func NewTarget(w io.Writer) Target {
	return &streamTarget{w: w}
}

func (t *streamTarget) Write(d []byte) (int, error) {
	return t.w.Write(d)
}

func (t *streamTarget) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (t *streamTarget) Sync() error {
	if s, ok := t.w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

func (t *streamTarget) Close() error {
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
