// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr-style logger at the named level; quiet raises
// the level to error.
func NewLogger(dst io.Writer, level string, quiet bool) (*log.Logger, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	if quiet && lvl < log.ErrorLevel {
		lvl = log.ErrorLevel
	}
	return log.NewWithOptions(dst, log.Options{Prefix: "pymer", Level: lvl}), nil
}
