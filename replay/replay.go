// Package replay reconstructs a store's root mapping from its log.
//
// Two modes exist. Safe replay, the default, admits only the literal
// grammar and the statement shapes the store emits; any constructor
// call or other computation fails the load with ErrUnsafeStatement
// naming the offending line. Trusted replay additionally resolves
// constructor calls through a handler registry's decode hooks and
// evaluates nonliteral right-hand sides as expressions, which runs
// registered reconstruction code and is only appropriate for logs of
// trusted provenance.
//
// Both modes discard a trailing statement that is missing its record
// terminator. That is the crash-recovery contract: opening a log cut
// off mid-write loses at most the one pending statement, surfaced as
// a warning, not an error.
//
// Loading a log that is concurrently being written is undefined;
// replay after the writer has closed (or from an independent copy)
// is the supported configuration.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"

	"github.com/signadot/laaos/debug"
	"github.com/signadot/laaos/handler"
	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/parse"
)

type Option func(*loader)

type loader struct {
	trusted bool
	reg     *handler.Registry
	logger  *slog.Logger
}

// Trusted enables trusted replay with reg's decode hooks. A nil reg
// still lifts the literal-only restriction for raw expressions but
// resolves no constructors.
func Trusted(reg *handler.Registry) Option {
	return func(l *loader) {
		l.trusted = true
		l.reg = reg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

// Load replays the log at path into a root mapping.
func Load(path string, opts ...Option) (*ir.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f, opts...)
}

// LoadString replays an in-memory log.
func LoadString(log string, opts ...Option) (*ir.Node, error) {
	return LoadReader(strings.NewReader(log), opts...)
}

// LoadReader replays a log from r into a root mapping. A log with no
// complete statement yields an empty root.
func LoadReader(r io.Reader, opts ...Option) (*ir.Node, error) {
	l := &loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	br := bufio.NewReader(r)
	var root *ir.Node
	lineNo := 0
	for {
		text, err := br.ReadString('\n')
		if err == io.EOF {
			if strings.TrimSpace(text) != "" {
				// crash tail: a statement is only committed once its
				// terminator is durable
				l.logger.Warn("discarding truncated trailing statement",
					"line", lineNo+1, "text", strings.TrimSpace(text))
			}
			break
		}
		if err != nil {
			return nil, err
		}
		lineNo++
		root, err = l.replayLine(root, []byte(text), lineNo)
		if err != nil {
			return nil, err
		}
	}
	if root == nil {
		root = ir.NewMap()
	}
	return root, nil
}

func (l *loader) replayLine(root *ir.Node, text []byte, lineNo int) (*ir.Node, error) {
	st, err := parse.Statement(text, parse.WithLine(lineNo), parse.Permissive(l.trusted))
	if err != nil {
		if l.trusted {
			return nil, l.stmtErr(lineNo, text, err)
		}
		return nil, l.stmtErr(lineNo, text, fmt.Errorf("%w: %w", ErrUnsafeStatement, err))
	}
	if st == nil {
		// blank or comment line
		return root, nil
	}
	if debug.Replay() {
		debug.Logf("replay %d: %s\n", lineNo, st.Text)
	}
	if l.trusted {
		if err := l.resolve(st); err != nil {
			return nil, l.stmtErr(lineNo, text, err)
		}
	} else if err := checkSafe(st); err != nil {
		return nil, l.stmtErr(lineNo, text, err)
	}
	root, err = Apply(root, st)
	if err != nil {
		return nil, l.stmtErr(lineNo, text, err)
	}
	return root, nil
}

func (l *loader) stmtErr(lineNo int, text []byte, err error) error {
	return &StatementError{
		Line: lineNo,
		Text: strings.TrimSpace(string(text)),
		Err:  err,
	}
}

// checkSafe rejects everything outside the literal-only grammar:
// unparsed right-hand sides and constructor calls anywhere in the
// statement's operands.
func checkSafe(st *parse.Stmt) error {
	if st.Raw != "" {
		return fmt.Errorf("%w: nonliteral expression %q", ErrUnsafeStatement, st.Raw)
	}
	nodes := make([]*ir.Node, 0, len(st.Path)+len(st.Args)+1)
	nodes = append(nodes, st.Path...)
	nodes = append(nodes, st.Args...)
	if st.Value != nil {
		nodes = append(nodes, st.Value)
	}
	for _, n := range nodes {
		if err := checkSafeNode(n); err != nil {
			return err
		}
	}
	return nil
}

func checkSafeNode(n *ir.Node) error {
	return n.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		if y.Type == ir.HandledType {
			return false, fmt.Errorf("%w: constructor call %s(...)",
				ErrUnsafeStatement, y.HandlerName)
		}
		for _, f := range y.Fields {
			if f.Type == ir.HandledType {
				return false, fmt.Errorf("%w: constructor call %s(...)",
					ErrUnsafeStatement, f.HandlerName)
			}
		}
		return true, nil
	})
}
