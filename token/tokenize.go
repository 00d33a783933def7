package token

import "fmt"

// Tokenize scans one statement line into tokens. line is the 1-based
// line number used for positions. A '#' outside of a string literal
// starts a comment running to the end of the line.
func Tokenize(d []byte, line int) ([]Token, error) {
	var toks []Token
	i := 0
	pos := func(off int) Pos { return Pos{Line: line, Col: off + 1} }
	emit := func(tt TokenType, off, end int) {
		toks = append(toks, Token{Type: tt, Pos: pos(off), Off: off, Bytes: d[off:end]})
	}
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '#':
			return toks, nil
		case c == '\'' || c == '"':
			end, err := scanString(d, i)
			if err != nil {
				return nil, NewTokenizeErr(err, pos(i))
			}
			emit(TString, i, end)
			i = end
		case c == '-' || (c >= '0' && c <= '9'):
			end, isFloat, err := scanNumber(d, i)
			if err != nil {
				return nil, NewTokenizeErr(err, pos(i))
			}
			if isFloat {
				emit(TFloat, i, end)
			} else {
				emit(TInt, i, end)
			}
			i = end
		case isIdentStart(c):
			end := i + 1
			for end < len(d) && isIdentPart(d[end]) {
				end++
			}
			tt := TIdent
			switch string(d[i:end]) {
			case "del":
				tt = TDel
			case "True":
				tt = TTrue
			case "False":
				tt = TFalse
			case "None":
				tt = TNone
			}
			emit(tt, i, end)
			i = end
		default:
			tt, ok := punct(c)
			if !ok {
				return nil, UnexpectedErr(fmt.Sprintf("character %q", c), pos(i))
			}
			emit(tt, i, i+1)
			i++
		}
	}
	return toks, nil
}

func punct(c byte) (TokenType, bool) {
	switch c {
	case '=':
		return TAssign, true
	case '[':
		return TLSquare, true
	case ']':
		return TRSquare, true
	case '{':
		return TLCurl, true
	case '}':
		return TRCurl, true
	case '(':
		return TLParen, true
	case ')':
		return TRParen, true
	case ',':
		return TComma, true
	case ':':
		return TColon, true
	case '.':
		return TDot, true
	}
	return 0, false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanString returns the offset just past the closing quote.
func scanString(d []byte, i int) (int, error) {
	q := d[i]
	j := i + 1
	for j < len(d) {
		switch d[j] {
		case '\\':
			j += 2
		case q:
			return j + 1, nil
		default:
			j++
		}
	}
	return 0, fmt.Errorf("%w: unterminated string literal", ErrTokenize)
}

// scanNumber returns the offset just past the number and whether it is
// a float (contains a fraction or an exponent).
func scanNumber(d []byte, i int) (int, bool, error) {
	j := i
	if d[j] == '-' {
		j++
	}
	ds := j
	for j < len(d) && d[j] >= '0' && d[j] <= '9' {
		j++
	}
	if j == ds {
		return 0, false, fmt.Errorf("%w: malformed number", ErrTokenize)
	}
	isFloat := false
	if j < len(d) && d[j] == '.' {
		isFloat = true
		j++
		fs := j
		for j < len(d) && d[j] >= '0' && d[j] <= '9' {
			j++
		}
		if j == fs {
			return 0, false, fmt.Errorf("%w: malformed float", ErrTokenize)
		}
	}
	if j < len(d) && (d[j] == 'e' || d[j] == 'E') {
		isFloat = true
		j++
		if j < len(d) && (d[j] == '+' || d[j] == '-') {
			j++
		}
		es := j
		for j < len(d) && d[j] >= '0' && d[j] <= '9' {
			j++
		}
		if j == es {
			return 0, false, fmt.Errorf("%w: malformed exponent", ErrTokenize)
		}
	}
	return j, isFloat, nil
}
