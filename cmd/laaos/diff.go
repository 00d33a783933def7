package main

import (
	"fmt"
	"strings"

	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/replay"

	"github.com/scott-cotton/cli"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := replayArg(cfg, cc, args[0])
	if err != nil {
		return err
	}
	b, err := replayArg(cfg, cc, args[1])
	if err != nil {
		return err
	}
	if ir.Equal(a, b) {
		return nil
	}
	ta, err := compactLog(a, nil)
	if err != nil {
		return err
	}
	tb, err := compactLog(b, nil)
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(ta, tb)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	if cfg.colored(cc.Out) {
		if _, err := fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprint(cc.Out, plainDiff(diffs)); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

func replayArg(cfg *DiffConfig, cc *cli.Context, path string) (*ir.Node, error) {
	d, err := readLog(cc, path)
	if err != nil {
		return nil, err
	}
	root, err := replay.LoadString(string(d), cfg.replayOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error replaying %s: %w", path, err)
	}
	return root, nil
}

func plainDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
