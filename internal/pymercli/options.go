package pymercli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"pymer-core/oligo"
	"pymer-core/scan"
	"pymer-core/thermo"

	"pymer/internal/clibase"
	"pymer/internal/cliutil"
)

// Synopsis is the one-line usage shown above usage errors.
const Synopsis = "<sequence> [-Tm T] [-Na c] [-K c] [-Tris c] [-Mg c] [-dNTPs c] [-oligo c] [options]"

type Options struct {
	clibase.Common

	// Input
	Sequence  string // validated, upper case; empty when FastaPath is used
	FastaPath string

	// Melting temperature
	TargetTm float64
	Na       float64
	K        float64
	Tris     float64
	Mg       float64
	DNTPs    float64
	Oligo    float64

	// Search
	MinLength int
	MaxLength int
	Pick      string

	// Folding
	RNAfold   string
	FoldCache int
}

// Conditions returns the solution the melting temperatures are computed in.
func (o Options) Conditions() thermo.Conditions {
	return thermo.Conditions{Na: o.Na, K: o.K, Tris: o.Tris, Mg: o.Mg, DNTPs: o.DNTPs, Oligo: o.Oligo}
}

// Params returns the search parameters. Pick was validated by ParseArgs.
func (o Options) Params() scan.Params {
	pick, _ := scan.ParsePick(o.Pick)
	return scan.Params{TargetTm: o.TargetTm, MinLength: o.MinLength, MaxLength: o.MaxLength, Pick: pick}
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] ACGTTGCA...\n", name)
		_, _ = fmt.Fprintf(out, "  %s [options] -fasta seq.fa[.gz]\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  sequence                    The sequence to search (A/C/G/T, any case)")
		_, _ = fmt.Fprintln(out, "      -fasta file             Read the first record of a FASTA file ('-' = STDIN)")

		_, _ = fmt.Fprintln(out, "\nMelting temperature:")
		_, _ = fmt.Fprintf(out, "      -Tm float               Target primer melting temperature (°C) [%s]\n", def("Tm"))
		_, _ = fmt.Fprintf(out, "      -Na float               Na+ concentration (mM) [%s]\n", def("Na"))
		_, _ = fmt.Fprintf(out, "      -K float                K+ concentration (mM) [%s]\n", def("K"))
		_, _ = fmt.Fprintf(out, "      -Tris float             Tris concentration (mM) [%s]\n", def("Tris"))
		_, _ = fmt.Fprintf(out, "      -Mg float               Mg2+ concentration (mM) [%s]\n", def("Mg"))
		_, _ = fmt.Fprintf(out, "      -dNTPs float            dNTPs concentration (mM) [%s]\n", def("dNTPs"))
		_, _ = fmt.Fprintf(out, "      -oligo float            Oligo concentration (nM) [%s]\n", def("oligo"))

		_, _ = fmt.Fprintln(out, "\nSearch:")
		_, _ = fmt.Fprintf(out, "      -min-length int         Shortest primer considered [%s]\n", def("min-length"))
		_, _ = fmt.Fprintf(out, "      -max-length int         Primers are shorter than this [%s]\n", def("max-length"))
		_, _ = fmt.Fprintf(out, "      -pick string            closest | shortest qualifying length [%s]\n", def("pick"))

		_, _ = fmt.Fprintln(out, "\nFolding:")
		_, _ = fmt.Fprintln(out, "      -rnafold path           RNAfold binary (else $PYMER_RNAFOLD, else RNAfold on PATH)")
		_, _ = fmt.Fprintf(out, "      -fold-cache int         Remember this many folded primers (0=off) [%s]\n", def("fold-cache"))
	})
	return fs
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.FastaPath, "fasta", "", "FASTA file; first record is scanned")

	fs.Float64Var(&o.TargetTm, "Tm", 62.0, "target primer melting temperature, used to calculate length")
	fs.Float64Var(&o.Na, "Na", 50.0, "Na concentration for melting temperature (mM)")
	fs.Float64Var(&o.K, "K", 0.0, "K concentration for melting temperature (mM)")
	fs.Float64Var(&o.Tris, "Tris", 0.0, "Tris concentration for melting temperature (mM)")
	fs.Float64Var(&o.Mg, "Mg", 2.0, "Mg++ concentration for melting temperature (mM)")
	fs.Float64Var(&o.DNTPs, "dNTPs", 0.2, "dNTPs concentration for melting temperature (mM)")
	fs.Float64Var(&o.Oligo, "oligo", 500.0, "oligo concentration for melting temperature (nM)")

	fs.IntVar(&o.MinLength, "min-length", 10, "shortest primer considered")
	fs.IntVar(&o.MaxLength, "max-length", 50, "primers are shorter than this")
	fs.StringVar(&o.Pick, "pick", "closest", "closest | shortest")

	fs.StringVar(&o.RNAfold, "rnafold", "", "RNAfold binary")
	fs.IntVar(&o.FoldCache, "fold-cache", 4096, "remember this many folded primers (0=off)")
	fs.BoolVar(&help, "h", false, "show this help [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}

	switch {
	case len(posArgs) > 1:
		return o, fmt.Errorf("expected one sequence, got %d", len(posArgs))
	case len(posArgs) == 1 && o.FastaPath != "":
		return o, fmt.Errorf("give either a sequence or -fasta, not both")
	case len(posArgs) == 0 && o.FastaPath == "":
		return o, fmt.Errorf("a sequence is required (positional or -fasta)")
	}
	if len(posArgs) == 1 {
		seq, err := oligo.Validate(posArgs[0])
		if err != nil {
			return o, err
		}
		o.Sequence = seq
	}

	if o.MinLength < 2 {
		return o, fmt.Errorf("-min-length must be ≥ 2")
	}
	if o.MaxLength <= o.MinLength {
		return o, fmt.Errorf("-max-length (%d) must exceed -min-length (%d)", o.MaxLength, o.MinLength)
	}
	if _, err := scan.ParsePick(o.Pick); err != nil {
		return o, err
	}
	o.Pick = strings.ToLower(strings.TrimSpace(o.Pick))
	if o.Oligo <= 0 {
		return o, fmt.Errorf("-oligo must be > 0")
	}
	for _, ion := range []struct {
		name string
		v    float64
	}{{"Na", o.Na}, {"K", o.K}, {"Tris", o.Tris}, {"Mg", o.Mg}, {"dNTPs", o.DNTPs}} {
		if ion.v < 0 {
			return o, fmt.Errorf("-%s must be ≥ 0", ion.name)
		}
	}
	if o.Conditions().NaEquivalent() <= 0 {
		return o, fmt.Errorf("total ion concentration must be > 0")
	}
	if o.FoldCache < 0 {
		return o, fmt.Errorf("-fold-cache must be ≥ 0")
	}
	return o, nil
}
