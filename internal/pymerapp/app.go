package pymerapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"pymer-core/fasta"
	"pymer-core/oligo"
	"pymer-core/scan"

	"pymer/internal/clibase"
	"pymer/internal/cmdutil"
	"pymer/internal/fold"
	"pymer/internal/pretty"
	"pymer/internal/pymercli"
	"pymer/internal/version"
)

const name = "pymer"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	flush := func(code int) int {
		if err := outw.Flush(); cmdutil.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return code
	}

	fs := pymercli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := pymercli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush(0)
		}
		usageError(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(0)
	}

	logger, err := cmdutil.NewLogger(stderr, opts.LogLevel, opts.Quiet)
	if err != nil {
		usageError(stderr, err)
		return 2
	}

	seq := opts.Sequence
	if opts.FastaPath != "" {
		rec, err := fasta.ReadFirst(parent, opts.FastaPath)
		if err != nil {
			usageError(stderr, err)
			return 2
		}
		if seq, err = oligo.Validate(string(rec.Seq)); err != nil {
			usageError(stderr, fmt.Errorf("%s: %w", rec.ID, err))
			return 2
		}
		logger.Info("read sequence", "id", rec.ID, "len", len(seq), "file", opts.FastaPath)
	}

	var folder scan.Folder = fold.RNAfold{Path: opts.RNAfold, Log: logger}
	var memo *fold.Memo
	if opts.FoldCache > 0 {
		memo = fold.NewMemo(folder, opts.FoldCache)
		folder = memo
	}

	params := opts.Params()
	melter := opts.Conditions()
	logger.Debug("search", "target_tm", params.TargetTm, "min", params.MinLength, "max", params.MaxLength,
		"pick", params.Pick, "na_eq_M", melter.NaEquivalent())

	fwd, err := scan.Analyse(parent, seq, params, melter, folder)
	if err != nil {
		return runtimeError(parent, logger, "forward strand", err)
	}
	rev, err := scan.Analyse(parent, oligo.RevComp(seq), params, melter, folder)
	if err != nil {
		return runtimeError(parent, logger, "reverse strand", err)
	}

	kv := []interface{}{"positions", len(seq), "forward", countFound(fwd), "reverse", countFound(rev)}
	if memo != nil {
		kv = append(kv, "folds", memo.Misses, "memo_hits", memo.Hits)
	}
	logger.Info("scan complete", kv...)

	if err := pretty.Render(outw, fwd, rev); err != nil {
		if cmdutil.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return flush(0)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func usageError(stderr io.Writer, err error) {
	clibase.UsageLine(stderr, name, pymercli.Synopsis)
	_, _ = fmt.Fprintf(stderr, "%s: error: %v\n", name, err)
}

func runtimeError(ctx context.Context, logger *log.Logger, what string, err error) int {
	if ctx.Err() != nil {
		logger.Error("interrupted", "during", what)
		return 130
	}
	logger.Error(what, "err", err)
	return 3
}

func countFound(recs []scan.Record) int {
	n := 0
	for _, r := range recs {
		if r.Found() {
			n++
		}
	}
	return n
}
