// internal/clibase/common.go
package clibase

import (
	"flag"
	"fmt"
	"strings"
)

// Common holds CLI fields shared by every pymer front end.
type Common struct {
	LogLevel string
	Quiet    bool
	Version  bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.LogLevel, "log-level", "warn", "log level: debug | info | warn | error [warn]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies shared CLI invariants.
func Validate(c *Common) error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid -log-level %q", c.LogLevel)
	}
	return nil
}
