package scan

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Melter returns the melting temperature (°C) of a primer.
type Melter interface {
	Tm(seq string) (float64, error)
}

// Folder returns the minimum free energy (kcal/mol) of a primer's secondary structure.
type Folder interface {
	Fold(ctx context.Context, seq string) (float64, error)
}

// MelterFunc adapts a plain function to Melter.
type MelterFunc func(seq string) (float64, error)

func (f MelterFunc) Tm(seq string) (float64, error) { return f(seq) }

// FolderFunc adapts a plain function to Folder.
type FolderFunc func(ctx context.Context, seq string) (float64, error)

func (f FolderFunc) Fold(ctx context.Context, seq string) (float64, error) { return f(ctx, seq) }

// Pick selects among the lengths whose Tm reaches the target.
type Pick int

const (
	// PickClosest takes the qualifying length whose Tm is closest to the
	// target; ties go to the shorter length.
	PickClosest Pick = iota
	// PickShortest takes the first qualifying length.
	PickShortest
)

func (p Pick) String() string {
	switch p {
	case PickClosest:
		return "closest"
	case PickShortest:
		return "shortest"
	default:
		return fmt.Sprintf("Pick(%d)", int(p))
	}
}

// ParsePick maps "closest"/"shortest" (case-insensitive) to a Pick.
func ParsePick(s string) (Pick, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "closest", "":
		return PickClosest, nil
	case "shortest":
		return PickShortest, nil
	default:
		return 0, fmt.Errorf("unknown pick rule %q (want closest or shortest)", s)
	}
}

// Params are the per-run search knobs.
type Params struct {
	TargetTm  float64 // °C
	MinLength int     // inclusive
	MaxLength int     // exclusive
	Pick      Pick
}

// DefaultParams mirrors the command-line defaults.
func DefaultParams() Params {
	return Params{TargetTm: 62.0, MinLength: 10, MaxLength: 50, Pick: PickClosest}
}

// Record describes the primer chosen for one position.
type Record struct {
	Base   byte     // base at the position
	Length int      // primer length; 0 when nothing qualified
	DG     float64  // folding ΔG (kcal/mol); −Inf when nothing qualified
	Tm     *float64 // achieved Tm (°C); nil when nothing qualified
	Primer string   // seq[i-Length:i]
}

// Sentinel is the record for a position without a qualifying primer.
func Sentinel(base byte) Record {
	return Record{Base: base, DG: math.Inf(-1)}
}

// Found reports whether a primer was chosen.
func (r Record) Found() bool { return r.Length > 0 }

// Analyse returns one Record per position of seq.
// seq is expected to be validated upper-case DNA.
func Analyse(ctx context.Context, seq string, p Params, m Melter, f Folder) ([]Record, error) {
	if p.MinLength < 1 {
		return nil, fmt.Errorf("scan: min length must be ≥ 1, got %d", p.MinLength)
	}
	out := make([]Record, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		L, tm, err := chooseLength(seq, i, p, m)
		if err != nil {
			return out, err
		}
		if L == 0 {
			out = append(out, Sentinel(seq[i]))
			continue
		}
		primer := seq[i-L : i]
		dg, err := f.Fold(ctx, primer)
		if err != nil {
			return out, fmt.Errorf("scan: fold %s (pos %d, %d nt): %w", primer, i, L, err)
		}
		out = append(out, Record{Base: seq[i], Length: L, DG: dg, Tm: &tm, Primer: primer})
	}
	return out, nil
}

// chooseLength returns the chosen length and its Tm, or 0 when no candidate
// ending before i reaches the target.
func chooseLength(seq string, i int, p Params, m Melter) (int, float64, error) {
	hi := min(i, p.MaxLength)
	best, bestTm := 0, 0.0
	for L := p.MinLength; L < hi; L++ {
		tm, err := m.Tm(seq[i-L : i])
		if err != nil {
			return 0, 0, fmt.Errorf("scan: Tm at pos %d, %d nt: %w", i, L, err)
		}
		if tm < p.TargetTm {
			continue
		}
		if p.Pick == PickShortest {
			return L, tm, nil
		}
		// Strict < keeps the shorter length on ties.
		if best == 0 || tm-p.TargetTm < bestTm-p.TargetTm {
			best, bestTm = L, tm
		}
	}
	return best, bestTm, nil
}
