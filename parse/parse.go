package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/token"
)

type ParseOption func(*parseOpts)

type parseOpts struct {
	line       int
	permissive bool
}

// WithLine sets the 1-based line number used in positions and in the
// resulting statement.
func WithLine(n int) ParseOption {
	return func(o *parseOpts) { o.line = n }
}

// Permissive makes assignment right-hand sides that fall outside the
// literal grammar parse into Stmt.Raw instead of failing. The trusted
// replayer evaluates such remnants; the safe replayer never sees them
// because it parses strictly.
func Permissive(v bool) ParseOption {
	return func(o *parseOpts) { o.permissive = v }
}

// Statement parses one statement line. Blank lines and comment lines
// yield (nil, nil).
func Statement(d []byte, opts ...ParseOption) (*Stmt, error) {
	pOpts := &parseOpts{line: 1}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(d, pOpts.line)
	if err != nil {
		if !pOpts.permissive {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		// The right-hand side may use syntax outside the statement
		// token set entirely. Split at the top-level '=' and keep the
		// remnant raw; the path must still parse.
		st, rawErr := rawAssign(d, pOpts)
		if rawErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		st.Line = pOpts.line
		st.Text = strings.TrimSpace(string(d))
		return st, nil
	}
	if len(toks) == 0 {
		return nil, nil
	}
	p := &parser{toks: toks, d: d, opts: pOpts}
	st, err := p.statement()
	if err != nil {
		return nil, err
	}
	st.Line = pOpts.line
	st.Text = strings.TrimSpace(string(d))
	return st, nil
}

// rawAssign parses "path = remnant" textually, for permissive parses
// whose right-hand side does not tokenize.
func rawAssign(d []byte, o *parseOpts) (*Stmt, error) {
	eq := topLevelAssign(d)
	if eq < 0 {
		return nil, fmt.Errorf("%w: no top-level assignment", ErrParse)
	}
	toks, err := token.Tokenize(d[:eq], o.line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	p := &parser{toks: toks, d: d, opts: o}
	path, err := p.path()
	if err != nil {
		return nil, err
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(string(d[eq+1:]))
	if raw == "" {
		return nil, fmt.Errorf("%w: missing assignment value", ErrParse)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: root assignment must be a map", ErrParse)
	}
	return &Stmt{Kind: KindAssign, Path: path, Raw: raw}, nil
}

// topLevelAssign finds the offset of the assignment '=': outside any
// string literal and at bracket depth zero.
func topLevelAssign(d []byte) int {
	depth := 0
	var q byte
	for i := 0; i < len(d); i++ {
		c := d[i]
		if q != 0 {
			switch c {
			case '\\':
				i++
			case q:
				q = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			q = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '#':
			return -1
		case '=':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

type parser struct {
	toks []token.Token
	i    int
	d    []byte
	opts *parseOpts
}

func (p *parser) cur() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	t := p.cur()
	if t != nil {
		p.i++
	}
	return t
}

func (p *parser) pos() token.Pos {
	if t := p.cur(); t != nil {
		return t.Pos
	}
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Pos
	}
	return token.Pos{Line: p.opts.line, Col: 1}
}

func (p *parser) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at %s", ErrParse, msg, p.pos())
}

func (p *parser) expect(tt token.TokenType, what string) (*token.Token, error) {
	t := p.cur()
	if t == nil || t.Type != tt {
		return nil, p.errf("expected %s", what)
	}
	p.i++
	return t, nil
}

func (p *parser) statement() (*Stmt, error) {
	t := p.cur()
	if t == nil {
		return nil, p.errf("empty statement")
	}
	if t.Type == token.TDel {
		p.i++
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		if len(path) == 0 {
			return nil, p.errf("cannot delete the root")
		}
		if err := p.end(); err != nil {
			return nil, err
		}
		return &Stmt{Kind: KindDelete, Path: path}, nil
	}
	path, err := p.path()
	if err != nil {
		return nil, err
	}
	switch t := p.cur(); {
	case t == nil:
		return nil, p.errf("expected '=' or method call")
	case t.Type == token.TAssign:
		p.i++
		return p.assign(path)
	case t.Type == token.TDot:
		p.i++
		return p.call(path)
	default:
		return nil, p.errf("unexpected %s", t.Type)
	}
}

func (p *parser) assign(path []*ir.Node) (*Stmt, error) {
	rawStart := len(p.d)
	if t := p.cur(); t != nil {
		rawStart = t.Off
	}
	save := p.i
	val, err := p.expr()
	if err == nil {
		err = p.end()
	}
	if err != nil {
		if !p.opts.permissive {
			return nil, err
		}
		p.i = save
		raw := strings.TrimSpace(string(p.d[rawStart:]))
		if raw == "" {
			return nil, p.errf("missing assignment value")
		}
		return &Stmt{Kind: KindAssign, Path: path, Raw: raw}, nil
	}
	if len(path) == 0 && val.Type != ir.MapType {
		return nil, p.errf("root assignment must be a map, got %s", val.Type)
	}
	return &Stmt{Kind: KindAssign, Path: path, Value: val}, nil
}

func (p *parser) call(path []*ir.Node) (*Stmt, error) {
	nameTok, err := p.expect(token.TIdent, "method name")
	if err != nil {
		return nil, err
	}
	method := string(nameTok.Bytes)
	arity, ok := Methods[method]
	if !ok {
		return nil, p.errf("unknown method %q", method)
	}
	if _, err := p.expect(token.TLParen, "'('"); err != nil {
		return nil, err
	}
	var args []*ir.Node
	for {
		t := p.cur()
		if t == nil {
			return nil, p.errf("unterminated argument list")
		}
		if t.Type == token.TRParen {
			p.i++
			break
		}
		if len(args) > 0 {
			if t.Type != token.TComma {
				return nil, p.errf("expected ',' in argument list")
			}
			p.i++
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	if len(args) != arity {
		return nil, p.errf("%s takes %d argument(s), got %d", method, arity, len(args))
	}
	return &Stmt{Kind: KindCall, Path: path, Method: method, Args: args}, nil
}

// path parses "store" followed by zero or more subscripts.
func (p *parser) path() ([]*ir.Node, error) {
	t, err := p.expect(token.TIdent, "'store'")
	if err != nil {
		return nil, err
	}
	if string(t.Bytes) != "store" {
		return nil, p.errf("path must begin with 'store', got %q", t.Bytes)
	}
	var path []*ir.Node
	for {
		t := p.cur()
		if t == nil || t.Type != token.TLSquare {
			return path, nil
		}
		p.i++
		key, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !key.Type.Scalar() {
			return nil, p.errf("subscript must be scalar, got %s", key.Type)
		}
		if _, err := p.expect(token.TRSquare, "']'"); err != nil {
			return nil, err
		}
		path = append(path, key)
	}
}

func (p *parser) end() error {
	if t := p.cur(); t != nil {
		return p.errf("trailing %s", t.Type)
	}
	return nil
}

func (p *parser) expr() (*ir.Node, error) {
	t := p.cur()
	if t == nil {
		return nil, p.errf("expected expression")
	}
	switch t.Type {
	case token.TNone:
		p.i++
		return ir.Null(), nil
	case token.TTrue:
		p.i++
		return ir.FromBool(true), nil
	case token.TFalse:
		p.i++
		return ir.FromBool(false), nil
	case token.TInt:
		p.i++
		v, err := strconv.ParseInt(string(t.Bytes), 10, 64)
		if err != nil {
			return nil, p.errf("bad integer %q", t.Bytes)
		}
		return ir.FromInt(v), nil
	case token.TFloat:
		p.i++
		f, err := strconv.ParseFloat(string(t.Bytes), 64)
		if err != nil {
			return nil, p.errf("bad float %q", t.Bytes)
		}
		return ir.FromFloat(f), nil
	case token.TString:
		p.i++
		s, err := token.Unquote(string(t.Bytes))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return ir.FromString(s), nil
	case token.TIdent:
		return p.callExpr()
	case token.TLSquare:
		return p.listExpr()
	case token.TLCurl:
		return p.mapOrSetExpr()
	}
	return nil, p.errf("unexpected %s", t.Type)
}

// callExpr parses a constructor call. "set()" is the empty-set
// literal; anything else becomes an unresolved handled-value node.
func (p *parser) callExpr() (*ir.Node, error) {
	nameTok := p.next()
	name := string(nameTok.Bytes)
	if _, err := p.expect(token.TLParen, "'(' after constructor name"); err != nil {
		return nil, err
	}
	var args []*ir.Node
	for {
		t := p.cur()
		if t == nil {
			return nil, p.errf("unterminated constructor call")
		}
		if t.Type == token.TRParen {
			p.i++
			break
		}
		if len(args) > 0 {
			if t.Type != token.TComma {
				return nil, p.errf("expected ',' in constructor call")
			}
			p.i++
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !arg.Type.Scalar() {
			return nil, p.errf("constructor argument must be scalar, got %s", arg.Type)
		}
		args = append(args, arg)
	}
	if name == "set" {
		if len(args) != 0 {
			return nil, p.errf("set() takes no arguments")
		}
		return ir.FromSet(nil)
	}
	return ir.FromHandled(name, args, nil), nil
}

func (p *parser) listExpr() (*ir.Node, error) {
	p.i++ // '['
	var elems []*ir.Node
	for {
		t := p.cur()
		if t == nil {
			return nil, p.errf("unterminated list literal")
		}
		if t.Type == token.TRSquare {
			p.i++
			break
		}
		if len(elems) > 0 {
			if t.Type != token.TComma {
				return nil, p.errf("expected ',' in list literal")
			}
			p.i++
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return ir.FromSlice(elems), nil
}

// mapOrSetExpr disambiguates '{...}' the way the literal grammar
// does: '{}' is an empty map, a ':' after the first element makes it
// a map, otherwise it is a set.
func (p *parser) mapOrSetExpr() (*ir.Node, error) {
	p.i++ // '{'
	t := p.cur()
	if t == nil {
		return nil, p.errf("unterminated '{' literal")
	}
	if t.Type == token.TRCurl {
		p.i++
		return ir.NewMap(), nil
	}
	first, err := p.expr()
	if err != nil {
		return nil, err
	}
	t = p.cur()
	if t == nil {
		return nil, p.errf("unterminated '{' literal")
	}
	if t.Type == token.TColon {
		return p.mapExpr(first)
	}
	return p.setExpr(first)
}

func (p *parser) mapExpr(firstKey *ir.Node) (*ir.Node, error) {
	var kvs []ir.KeyVal
	key := firstKey
	for {
		if !key.Type.Scalar() {
			return nil, p.errf("map key must be scalar, got %s", key.Type)
		}
		if _, err := p.expect(token.TColon, "':'"); err != nil {
			return nil, err
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		t := p.cur()
		if t == nil {
			return nil, p.errf("unterminated map literal")
		}
		if t.Type == token.TRCurl {
			p.i++
			break
		}
		if t.Type != token.TComma {
			return nil, p.errf("expected ',' in map literal")
		}
		p.i++
		key, err = p.expr()
		if err != nil {
			return nil, err
		}
	}
	res, err := ir.FromKeyVals(kvs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

func (p *parser) setExpr(first *ir.Node) (*ir.Node, error) {
	elems := []*ir.Node{first}
	for {
		t := p.cur()
		if t == nil {
			return nil, p.errf("unterminated set literal")
		}
		if t.Type == token.TRCurl {
			p.i++
			break
		}
		if t.Type != token.TComma {
			return nil, p.errf("expected ',' in set literal")
		}
		p.i++
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	for _, e := range elems {
		if !e.Type.Scalar() {
			return nil, p.errf("set element must be scalar, got %s", e.Type)
		}
	}
	res, err := ir.FromSet(elems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}
