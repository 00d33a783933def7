package main

import (
	"errors"
	"fmt"

	"github.com/signadot/laaos/replay"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	bad := 0
	err = eachLog(cc, args, func(path string, d []byte) error {
		if _, err := replay.LoadString(string(d), cfg.replayOpts()...); err != nil {
			bad++
			stErr := &replay.StatementError{}
			if errors.As(err, &stErr) {
				fmt.Fprintf(cc.Out, "%s:%d: %v\n", path, stErr.Line, stErr.Err)
				return nil
			}
			fmt.Fprintf(cc.Out, "%s: %v\n", path, err)
			return nil
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", path)
		return nil
	})
	if err != nil {
		return err
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
