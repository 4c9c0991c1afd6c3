// Package fold estimates primer secondary-structure stability by running
// ViennaRNA's RNAfold and reading the minimum free energy from its output.
package fold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// EnvBinary names the environment variable consulted when no binary is given.
const EnvBinary = "PYMER_RNAFOLD"

// DefaultBinary is looked up on PATH when neither flag nor env are set.
const DefaultBinary = "RNAfold"

var energyRe = regexp.MustCompile(`\(\s*(-?\d+\.\d+)\)`)

// ParseError reports RNAfold output without a recognizable energy.
type ParseError struct {
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't parse RNAfold output: %q", e.Output)
}

// RNAfold runs one RNAfold process per Fold call.
type RNAfold struct {
	Path string      // binary; see Resolve
	Log  *log.Logger // optional; debug-level per call
}

// Resolve picks the RNAfold binary: explicit path, then $PYMER_RNAFOLD, then
// DefaultBinary.
func Resolve(path string) string {
	if p := strings.TrimSpace(path); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvBinary)); p != "" {
		return p
	}
	return DefaultBinary
}

// Input renders seq the way RNAfold expects it on stdin: upper-case RNA,
// followed by the "@" end-of-input marker.
func Input(seq string) string {
	rna := strings.ReplaceAll(strings.ToUpper(seq), "T", "U")
	return rna + "\n@\n"
}

// ParseEnergy extracts the free energy from the structure line (the second
// line) of RNAfold output, e.g. "((((...)))) ( -3.40)".
func ParseEnergy(out string) (float64, error) {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return 0, &ParseError{Output: out}
	}
	m := energyRe.FindStringSubmatch(lines[1])
	if m == nil {
		return 0, &ParseError{Output: out}
	}
	e, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &ParseError{Output: out}
	}
	return e, nil
}

// Fold returns the minimum free energy (kcal/mol) of seq.
// The process is killed if ctx is canceled.
func (r RNAfold) Fold(ctx context.Context, seq string) (float64, error) {
	bin := Resolve(r.Path)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--noPS")
	cmd.Stdin = strings.NewReader(Input(seq))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return 0, fmt.Errorf("fold: %s: %w: %s", bin, err, msg)
		}
		return 0, fmt.Errorf("fold: %s: %w", bin, err)
	}
	e, err := ParseEnergy(stdout.String())
	if err != nil {
		return 0, err
	}
	if r.Log != nil {
		r.Log.Debug("folded", "seq", seq, "dg", e, "duration", time.Since(start))
	}
	return e, nil
}
