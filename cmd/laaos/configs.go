package main

import (
	"io"
	"os"

	"github.com/signadot/laaos/handler"
	"github.com/signadot/laaos/replay"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Trusted bool `cli:"name=trusted desc='replay expression and constructor statements'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// replayOpts builds the replay options for the flags in effect.
// Trusted replay at the command line resolves expressions but has no
// type handlers, so constructor calls still fail.
func (cfg *MainConfig) replayOpts() []replay.Option {
	if cfg.Trusted {
		return []replay.Option{replay.Trusted(handler.NewRegistry(false))}
	}
	return nil
}

// colored reports whether output to w should be colorized.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type LoadConfig struct {
	*MainConfig

	Load *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
