package store

import (
	"log/slog"

	"github.com/signadot/laaos/handler"
)

// Option configures a Store at open time.
type Option func(*config)

type config struct {
	initial       map[string]any
	handlers      []handler.Handler
	allowOverride bool
	logger        *slog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.Default()}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithInitialData seeds top-level entries when the store is created.
// When appending to an existing log, only entries whose key is not
// already present after replay are seeded.
func WithInitialData(d map[string]any) Option {
	return func(cfg *config) {
		cfg.initial = d
	}
}

// WithHandlers registers type handlers with the store's registry.
// Handlers extend both encoding of live values and decoding of
// constructor calls on reopen.
func WithHandlers(hs ...handler.Handler) Option {
	return func(cfg *config) {
		cfg.handlers = append(cfg.handlers, hs...)
	}
}

// WithAllowOverride lets a later handler registration replace an
// earlier one for the same type or name. The default is to reject
// duplicates with handler.ErrDuplicateHandler.
func WithAllowOverride(v bool) Option {
	return func(cfg *config) {
		cfg.allowOverride = v
	}
}

// WithLogger sets the logger used for diagnostics, such as truncated
// trailing statements discarded on reopen.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}
