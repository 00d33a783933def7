package token

import "fmt"

type TokenType int

const (
	TIdent TokenType = iota
	TInt
	TFloat
	TString
	TAssign
	TLSquare
	TRSquare
	TLCurl
	TRCurl
	TLParen
	TRParen
	TComma
	TColon
	TDot
	TDel
	TTrue
	TFalse
	TNone
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TIdent:   "TIdent",
		TInt:     "TInt",
		TFloat:   "TFloat",
		TString:  "TString",
		TAssign:  "TAssign",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLParen:  "TLParen",
		TRParen:  "TRParen",
		TComma:   "TComma",
		TColon:   "TColon",
		TDot:     "TDot",
		TDel:     "TDel",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TNone:    "TNone",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   Pos
	Off   int // byte offset of the token in the statement line
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the token's value: unquoted content for strings,
// the raw bytes otherwise.
func (t *Token) String() string {
	if t.Type == TString {
		s, err := Unquote(string(t.Bytes))
		if err != nil {
			return string(t.Bytes)
		}
		return s
	}
	return string(t.Bytes)
}

// End returns the byte offset just past the token.
func (t *Token) End() int {
	return t.Off + len(t.Bytes)
}
