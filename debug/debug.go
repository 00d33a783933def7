package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Store  bool
	Replay bool
	Wal    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Store = boolEnv("LAAOS_DEBUG_STORE")
	d.Replay = boolEnv("LAAOS_DEBUG_REPLAY")
	d.Wal = boolEnv("LAAOS_DEBUG_WAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Store() bool {
	return d.Store
}
func Replay() bool {
	return d.Replay
}
func Wal() bool {
	return d.Wal
}
