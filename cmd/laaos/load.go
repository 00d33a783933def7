package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/replay"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
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
		if err := loadLog(cfg, cc.Out, d); err != nil {
			return fmt.Errorf("error processing %s: %w", path, err)
		}
		return nil
	})
}

func loadLog(cfg *LoadConfig, w io.Writer, d []byte) error {
	root, err := replay.LoadString(string(d), cfg.replayOpts()...)
	if err != nil {
		return err
	}
	var colors *encode.Colors
	if cfg.colored(w) {
		colors = encode.NewColors()
	}
	out, err := compactLog(root, colors)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// compactLog renders the minimal statement sequence that rebuilds a
// replayed state: the empty root assignment followed by one
// assignment per top-level entry.
func compactLog(root *ir.Node, colors *encode.Colors) (string, error) {
	var b strings.Builder
	var encOpts []encode.EncodeOption
	if colors != nil {
		encOpts = append(encOpts, encode.EncodeColors(colors))
	}
	path := func(s string) string { return s }
	sep := path
	if colors != nil {
		path = func(s string) string {
			return colors.Color(ir.MapType, encode.PathColor, s)
		}
		sep = func(s string) string {
			return colors.Color(ir.MapType, encode.SepColor, s)
		}
	}
	b.WriteString(path("store") + sep(" = ") + sep("{}") + "\n")
	for i, f := range root.Fields {
		lit, err := encode.Literal(root.Values[i], encOpts...)
		if err != nil {
			return "", err
		}
		b.WriteString(path("store[" + f.ParentField + "]"))
		b.WriteString(sep(" = "))
		b.WriteString(lit)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
