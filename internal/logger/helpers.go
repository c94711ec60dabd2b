package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagSilent       bool // --silent/-s
	FlagJSON         bool // --json-logs
)

func ConfigureLoggerFromFlags() {
	var w io.Writer = os.Stdout
	lvl := "info"
	switch {
	case FlagSilent:
		lvl = "error"
		w = io.Discard
	case FlagQuiet:
		lvl = "error"
	case FlagVerboseCount > 0:
		lvl = "debug"
	}

	Configure(Options{
		Level: lvl,
		JSON:  FlagJSON,
		Out:   w,
	})
}
