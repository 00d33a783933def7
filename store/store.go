package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/signadot/laaos/debug"
	"github.com/signadot/laaos/gomap"
	"github.com/signadot/laaos/handler"
	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/replay"
	"github.com/signadot/laaos/wal"
)

// Store is a mutation-logged container store. The zero value is not
// usable; construct with Open or New.
type Store struct {
	w        *wal.Writer
	reg      *handler.Registry
	root     *Map
	location string
	logger   *slog.Logger
	closed   bool
}

// Open opens the log file at target in the given mode and returns a
// store backed by it. In wal.Append mode an existing, non-empty log
// is first replayed (constructor calls resolve through the store's
// handlers) and the store resumes from the replayed state; otherwise
// the root is initialized fresh and seeded from WithInitialData.
func Open(target string, mode wal.Mode, opts ...Option) (*Store, error) {
	cfg := newConfig(opts)
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}
	var loaded *ir.Node
	if mode == wal.Append {
		if fi, err := os.Stat(target); err == nil && fi.Size() > 0 {
			loaded, err = replay.Load(target,
				replay.Trusted(reg), replay.WithLogger(cfg.logger))
			if err != nil {
				return nil, err
			}
		}
	}
	t, err := wal.OpenFile(target, mode)
	if err != nil {
		return nil, err
	}
	loc := target
	if abs, err := filepath.Abs(target); err == nil {
		loc = abs
	}
	return open(t, loc, loaded, reg, cfg)
}

// New returns a store writing to t, which it takes ownership of.
// It is used for in-memory or test targets; file-backed stores
// should use Open.
func New(t wal.Target, opts ...Option) (*Store, error) {
	cfg := newConfig(opts)
	reg, err := newRegistry(cfg)
	if err != nil {
		t.Close()
		return nil, err
	}
	return open(t, "", nil, reg, cfg)
}

func newRegistry(cfg *config) (*handler.Registry, error) {
	reg := handler.NewRegistry(cfg.allowOverride)
	for _, h := range cfg.handlers {
		if err := reg.Register(h); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func open(t wal.Target, loc string, loaded *ir.Node, reg *handler.Registry, cfg *config) (*Store, error) {
	s := &Store{
		w:        wal.NewWriter(t, cfg.logger),
		reg:      reg,
		location: loc,
		logger:   cfg.logger,
	}
	s.root = newMap(s)
	s.root.root = true
	if err := s.init(loaded, cfg.initial); err != nil {
		s.w.Close()
		return nil, err
	}
	return s, nil
}

// init establishes the root. A fresh log starts with the empty root
// assignment followed by one assignment per seeded entry, so a
// replayed log and a live store build the root the same way.
func (s *Store) init(loaded *ir.Node, initial map[string]any) error {
	if loaded != nil {
		if err := s.adopt(loaded); err != nil {
			return err
		}
	} else {
		if err := s.append("store = {}"); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if loaded != nil && s.root.Has(k) {
			continue
		}
		if err := s.root.Set(k, initial[k]); err != nil {
			return err
		}
	}
	return nil
}

// adopt rebuilds the live root from a replayed tree.
func (s *Store) adopt(loaded *ir.Node) error {
	if loaded.Type != ir.MapType {
		return fmt.Errorf("%w: replayed root is %s, not map",
			replay.ErrReplay, loaded.Type)
	}
	for i, f := range loaded.Fields {
		lit := f.ParentField
		stored, err := s.materialize(loaded.Values[i])
		if err != nil {
			return err
		}
		s.root.put(f.Clone(), lit, stored)
	}
	return nil
}

// Location reports the absolute path of a file-backed store's log,
// or "" for stream-backed stores.
func (s *Store) Location() string { return s.location }

// Root returns the root mapping.
func (s *Store) Root() *Map { return s.root }

// Snapshot renders the current state as a value tree.
func (s *Store) Snapshot() *ir.Node { return s.root.Snapshot() }

// Appended reports the number of statements durably appended.
func (s *Store) Appended() int64 { return s.w.Appended() }

// Close flushes and closes the underlying log. Further mutations
// fail with ErrClosedStore; reads keep working. Close is idempotent.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.w.Close()
}

// Closed reports whether the store no longer accepts mutations,
// either via Close or after a log write failure.
func (s *Store) Closed() bool { return s.closed || s.w.Closed() }

func (s *Store) writable() error {
	if s.Closed() {
		return ErrClosedStore
	}
	return nil
}

func (s *Store) append(stmt string) error {
	if debug.Store() {
		debug.Logf("store: append %q\n", stmt)
	}
	return s.w.Append(stmt)
}

// Root mapping conveniences.

func (s *Store) Set(key, value any) error       { return s.root.Set(key, value) }
func (s *Store) Get(key any) (any, bool)        { return s.root.Get(key) }
func (s *Store) Delete(key any) error           { return s.root.Delete(key) }
func (s *Store) Update(vs map[string]any) error { return s.root.Update(vs) }
func (s *Store) Has(key any) bool               { return s.root.Has(key) }
func (s *Store) Len() int                       { return s.root.Len() }
func (s *Store) Keys() []any                    { return s.root.Keys() }

// GetMap returns the mapping at key in the root.
func (s *Store) GetMap(key any) (*Map, error) { return s.root.GetMap(key) }

// GetList returns the list at key in the root.
func (s *Store) GetList(key any) (*List, error) { return s.root.GetList(key) }

// GetSet returns the set at key in the root.
func (s *Store) GetSet(key any) (*Set, error) { return s.root.GetSet(key) }

// NewMap assigns an empty mapping at key in the root and returns its
// proxy.
func (s *Store) NewMap(key any) (*Map, error) {
	if err := s.Set(key, map[string]any{}); err != nil {
		return nil, err
	}
	return s.GetMap(key)
}

// NewList assigns an empty list at key in the root and returns its
// proxy.
func (s *Store) NewList(key any) (*List, error) {
	if err := s.Set(key, []any{}); err != nil {
		return nil, err
	}
	return s.GetList(key)
}

// NewSet assigns an empty set at key in the root and returns its
// proxy.
func (s *Store) NewSet(key any) (*Set, error) {
	if err := s.Set(key, gomap.Set{}); err != nil {
		return nil, err
	}
	return s.GetSet(key)
}
