package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func laaosMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// readLog reads a log from a path argument, with "-" meaning stdin.
func readLog(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// eachLog runs fn over the file arguments, or stdin when there are
// none.
func eachLog(cc *cli.Context, args []string, fn func(path string, d []byte) error) error {
	if len(args) == 0 {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		return fn("-", d)
	}
	for _, path := range args {
		d, err := readLog(cc, path)
		if err != nil {
			return err
		}
		if err := fn(path, d); err != nil {
			return err
		}
	}
	return nil
}
