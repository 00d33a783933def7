package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Quote renders s as a statement string literal. Single quotes are
// preferred; a string containing single quotes but no double quotes is
// rendered double-quoted instead, so the common cases stay free of
// escapes. The result round-trips through Unquote.
func Quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// Unquote parses a single- or double-quoted string literal, including
// its surrounding quotes.
func Unquote(v string) (string, error) {
	if len(v) < 2 {
		return "", fmt.Errorf("%w: string literal too short", ErrTokenize)
	}
	q := v[0]
	if q != '\'' && q != '"' {
		return "", fmt.Errorf("%w: not a string literal", ErrTokenize)
	}
	if v[len(v)-1] != q {
		return "", fmt.Errorf("%w: unterminated string literal", ErrTokenize)
	}
	d := v[1 : len(v)-1]
	var b strings.Builder
	b.Grow(len(d))
	for i := 0; i < len(d); {
		c := d[i]
		if c == q {
			return "", fmt.Errorf("%w: unescaped quote in string literal", ErrTokenize)
		}
		if c != '\\' {
			r, sz := utf8.DecodeRuneInString(d[i:])
			b.WriteRune(r)
			i += sz
			continue
		}
		i++
		if i >= len(d) {
			return "", fmt.Errorf("%w: trailing backslash in string literal", ErrTokenize)
		}
		switch d[i] {
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 >= len(d) {
				return "", fmt.Errorf("%w: short \\x escape", ErrTokenize)
			}
			hi, okHi := unhex(d[i+1])
			lo, okLo := unhex(d[i+2])
			if !okHi || !okLo {
				return "", fmt.Errorf("%w: bad \\x escape", ErrTokenize)
			}
			b.WriteByte(hi<<4 | lo)
			i += 2
		case 'u':
			if i+4 >= len(d) {
				return "", fmt.Errorf("%w: short \\u escape", ErrTokenize)
			}
			var r rune
			for j := 1; j <= 4; j++ {
				x, ok := unhex(d[i+j])
				if !ok {
					return "", fmt.Errorf("%w: bad \\u escape", ErrTokenize)
				}
				r = r<<4 | rune(x)
			}
			b.WriteRune(r)
			i += 4
		default:
			return "", fmt.Errorf("%w: unknown escape \\%c", ErrTokenize, d[i])
		}
		i++
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
