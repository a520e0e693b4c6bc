package cli

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

var (
	colorOnce    sync.Once
	colorEnabled bool
)

// useColor reports whether stderr diagnostics should be colored.
func useColor() bool {
	colorOnce.Do(func() {
		// NO_COLOR convention: https://no-color.org/
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return
		}
		if os.Getenv("TERM") == "dumb" {
			return
		}
		colorEnabled = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	})
	return colorEnabled
}

func colorize(s, color string) string {
	if !useColor() {
		return s
	}
	return color + s + colorReset
}
