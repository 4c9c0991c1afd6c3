// Package pretty renders forward and reverse primer scans as one aligned
// text diagram: reverse-strand primer on the left, position and bases in the
// middle, forward-strand primer on the right.
package pretty

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"pymer-core/scan"
)

// Options control the ASCII rendering.
type Options struct {
	// Width of the folding-energy bar for the most stable primer of a strand.
	BarWidth int
	// Glyphs
	BarGlyph string // default "#"
	PadGlyph string // default "-"
}

// DefaultOptions is the classic pymer look.
var DefaultOptions = Options{
	BarWidth: 10,
	BarGlyph: "#",
	PadGlyph: "-",
}

// strand holds per-strand scale factors.
type strand struct {
	maxLen int
	minDG  float64 // most negative ΔG among found primers; 0 if none
}

func measure(recs []scan.Record) strand {
	var s strand
	for _, r := range recs {
		if r.Length > s.maxLen {
			s.maxLen = r.Length
		}
		if r.Found() && r.DG < s.minDG {
			s.minDG = r.DG
		}
	}
	return s
}

// bar scales dg against the strand's most negative ΔG.
// Halves round to even.
func (s strand) bar(dg float64, o Options) string {
	if s.minDG == 0 {
		return ""
	}
	n := int(math.RoundToEven(float64(o.BarWidth) * dg / s.minDG))
	if n <= 0 {
		return ""
	}
	return strings.Repeat(o.BarGlyph, n)
}

func leftPad(s string, width int, glyph string) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(glyph, width-len(s)) + s
}

// Render writes the diagram with DefaultOptions.
func Render(w io.Writer, fwd, rev []scan.Record) error {
	return RenderWith(w, fwd, rev, DefaultOptions)
}

// RenderWith writes one line per position. rev holds the scan of the reverse
// complement, so line i pairs fwd[i] with rev[n-1-i].
func RenderWith(w io.Writer, fwd, rev []scan.Record, o Options) error {
	if len(fwd) != len(rev) {
		return fmt.Errorf("pretty: forward/reverse length mismatch (%d vs %d)", len(fwd), len(rev))
	}
	n := len(fwd)
	if n == 0 {
		return nil
	}
	fs, rs := measure(fwd), measure(rev)
	idxWidth := len(strconv.Itoa(n - 1))
	// Width of a rendered reverse block: bar, `=ss "`, primer, `" `, length, `bp`.
	blank := strings.Repeat(" ", o.BarWidth+5+rs.maxLen+2+2+2)

	bw := bufio.NewWriter(w)
	for i := 0; i < n; i++ {
		f, r := fwd[i], rev[n-1-i]

		if r.Found() {
			fmt.Fprintf(bw, "%*s=ss \"%s\" %2dbp", o.BarWidth, rs.bar(r.DG, o), leftPad(r.Primer, rs.maxLen, o.PadGlyph), r.Length)
		} else {
			bw.WriteString(blank)
		}

		fmt.Fprintf(bw, " :%c-%*d-%c: ", r.Base, idxWidth, i, f.Base)

		if f.Found() {
			fmt.Fprintf(bw, "%2dbp \"%s\" ss=%-*s", f.Length, leftPad(f.Primer, fs.maxLen, o.PadGlyph), o.BarWidth, fs.bar(f.DG, o))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
