package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	first := true
	return eachLog(cc, args, func(path string, d []byte) error {
		if !first {
			if _, err := cc.Out.Write([]byte("\n---\n")); err != nil {
				return err
			}
		}
		first = false
		if err := viewLog(cfg, cc.Out, d); err != nil {
			return fmt.Errorf("error processing %s: %w", path, err)
		}
		return nil
	})
}

func viewLog(cfg *ViewConfig, w io.Writer, d []byte) error {
	var colors *encode.Colors
	if cfg.colored(w) {
		colors = encode.NewColors()
	}
	lines := bytes.Split(d, []byte("\n"))
	for i, line := range lines {
		if i == len(lines)-1 && len(bytes.TrimSpace(line)) == 0 {
			break
		}
		st, err := parse.Statement(line,
			parse.WithLine(i+1), parse.Permissive(cfg.Trusted))
		if err != nil {
			return err
		}
		if st == nil {
			// comment or blank, pass through
			if _, err := w.Write(append(line, '\n')); err != nil {
				return err
			}
			continue
		}
		out, err := renderStmt(st, colors)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, out+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// renderStmt renders one statement, colorized when colors is non-nil.
func renderStmt(st *parse.Stmt, colors *encode.Colors) (string, error) {
	if colors == nil {
		return strings.TrimSpace(st.Text), nil
	}
	rawAcc, err := st.Accessor()
	if err != nil {
		return "", err
	}
	acc := colors.Color(ir.MapType, encode.PathColor, rawAcc)
	switch st.Kind {
	case parse.KindDelete:
		return colors.Color(ir.MapType, encode.KeywordColor, "del") + " " + acc, nil
	case parse.KindAssign:
		val, err := renderValue(st, colors)
		if err != nil {
			return "", err
		}
		return acc + colors.Color(ir.MapType, encode.SepColor, " = ") + val, nil
	case parse.KindCall:
		var b strings.Builder
		b.WriteString(acc)
		b.WriteString(colors.Color(ir.MapType, encode.SepColor, "."))
		b.WriteString(colors.Color(ir.MapType, encode.KeywordColor, st.Method))
		b.WriteString(colors.Color(ir.MapType, encode.SepColor, "("))
		for i, a := range st.Args {
			if i > 0 {
				b.WriteString(colors.Color(ir.MapType, encode.SepColor, ", "))
			}
			lit, err := encode.Literal(a, encode.EncodeColors(colors))
			if err != nil {
				return "", err
			}
			b.WriteString(lit)
		}
		b.WriteString(colors.Color(ir.MapType, encode.SepColor, ")"))
		return b.String(), nil
	}
	return strings.TrimSpace(st.Text), nil
}

func renderValue(st *parse.Stmt, colors *encode.Colors) (string, error) {
	if st.Raw != "" {
		return colors.Color(ir.HandledType, encode.ValueColor, st.Raw), nil
	}
	return encode.Literal(st.Value, encode.EncodeColors(colors))
}
