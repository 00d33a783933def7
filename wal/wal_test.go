package wal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriterAppend(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(NewTarget(buf), nil)
	stmts := []string{
		"store = {}",
		"store['a'] = 1",
		"del store['a']",
	}
	for _, s := range stmts {
		if err := w.Append(s); err != nil {
			t.Fatal(err)
		}
	}
	if w.Appended() != int64(len(stmts)) {
		t.Errorf("Appended() = %d, want %d", w.Appended(), len(stmts))
	}
	expected := "store = {}\nstore['a'] = 1\ndel store['a']\n"
	if buf.String() != expected {
		t.Errorf("log = %q, want %q", buf.String(), expected)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if err := w.Append("store['b'] = 2"); !errors.Is(err, ErrClosedStore) {
		t.Errorf("append after close: got %v, want ErrClosedStore", err)
	}
}

func TestWriterRejectsTerminator(t *testing.T) {
	w := NewWriter(NewTarget(&bytes.Buffer{}), nil)
	if err := w.Append("store['a'] = 1\nstore['b'] = 2"); err == nil {
		t.Fatal("statement with embedded newline was accepted")
	}
	if w.Closed() {
		t.Error("rejected statement closed the writer")
	}
	if w.Appended() != 0 {
		t.Errorf("Appended() = %d, want 0", w.Appended())
	}
}

type failingWriter struct {
	fails int
	n     int
}

func (f *failingWriter) Write(d []byte) (int, error) {
	f.n++
	if f.n > f.fails {
		return 0, errors.New("disk full")
	}
	return len(d), nil
}

func TestWriterFailureCloses(t *testing.T) {
	fw := &failingWriter{fails: 1}
	w := NewWriter(NewTarget(fw), nil)
	if err := w.Append("store = {}"); err != nil {
		t.Fatal(err)
	}
	if err := w.Append("store['a'] = 1"); err == nil {
		t.Fatal("append on failing target succeeded")
	}
	if !w.Closed() {
		t.Error("writer stayed open after a write failure")
	}
	if err := w.Append("store['b'] = 2"); !errors.Is(err, ErrClosedStore) {
		t.Errorf("append after failure: got %v, want ErrClosedStore", err)
	}
}

func TestOpenFileModes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log")

	target, err := OpenFile(path, CreateNew)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(target, nil)
	if err := w.Append("store = {}"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	// CreateNew refuses an existing log
	if _, err := OpenFile(path, CreateNew); err == nil {
		t.Fatal("CreateNew opened an existing file")
	}

	// Append preserves content
	target, err = OpenFile(path, Append)
	if err != nil {
		t.Fatal(err)
	}
	w = NewWriter(target, nil)
	if err := w.Append("store['a'] = 1"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "store = {}\nstore['a'] = 1\n" {
		t.Errorf("appended log = %q", d)
	}

	// Truncate discards content
	target, err = OpenFile(path, Truncate)
	if err != nil {
		t.Fatal(err)
	}
	w = NewWriter(target, nil)
	if err := w.Append("store = {}"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	d, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "store = {}\n" {
		t.Errorf("truncated log = %q", d)
	}
}

func TestAppendDropsPartialTail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log")
	// a crash mid-statement leaves an unterminated fragment
	if err := os.WriteFile(path, []byte("store = {}\nstore['a'] = 1\nstore['b'] = "), 0644); err != nil {
		t.Fatal(err)
	}

	target, err := OpenFile(path, Append)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(target, nil)
	if err := w.Append("store['c'] = 3"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// the fragment is gone and the new statement is on its own line
	if string(d) != "store = {}\nstore['a'] = 1\nstore['c'] = 3\n" {
		t.Errorf("recovered log = %q", d)
	}
}
