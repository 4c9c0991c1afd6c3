package pymerapp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const testSeq = "ACGTTGCAAGTCAGGCTTACGATC"

// fakeRNAfold writes a stand-in RNAfold that answers every fold with dg.
func fakeRNAfold(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "RNAfold")
	script := "#!/bin/sh\ncat > /dev/null\n" + body + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake: %v", err)
	}
	return bin
}

func okFold(t *testing.T) string {
	return fakeRNAfold(t, `printf 'ACGU\n.... ( -1.20)\n'`)
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errB bytes.Buffer
	code := Run(argv, &out, &errB)
	return code, out.String(), errB.String()
}

func TestRun_Report(t *testing.T) {
	code, out, stderr := run(t, testSeq, "-Tm", "30", "-rnafold", okFold(t))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != len(testSeq) {
		t.Fatalf("want %d lines, got %d:\n%s", len(testSeq), len(lines), out)
	}
	// Line 0 pairs the last reverse-complement base (T) with the first forward base (A).
	if !strings.Contains(lines[0], " :T- 0-A: ") {
		t.Errorf("first line pairs wrong bases: %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "-A: ") {
		t.Errorf("forward primer shown before min length: %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, `bp "`) {
		t.Errorf("no forward primer on the last line: %q", last)
	}
	if !strings.Contains(out, "=ss") || !strings.Contains(out, "ss=#") {
		t.Errorf("missing energy bars:\n%s", out)
	}
}

func TestRun_Fasta(t *testing.T) {
	fa := filepath.Join(t.TempDir(), "in.fa")
	if err := os.WriteFile(fa, []byte(">s1 demo\n"+strings.ToLower(testSeq[:12])+"\n"+testSeq[12:]+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bin := okFold(t)
	code, fromFile, stderr := run(t, "-fasta", fa, "-Tm", "30", "-rnafold", bin)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	_, direct, _ := run(t, testSeq, "-Tm", "30", "-rnafold", bin)
	if fromFile != direct {
		t.Errorf("fasta and positional reports differ:\n%s\n---\n%s", fromFile, direct)
	}
}

func TestRun_InvalidCharacter(t *testing.T) {
	code, out, stderr := run(t, "ATXG")
	if code != 2 {
		t.Fatalf("want exit 2, got %d", code)
	}
	if out != "" {
		t.Errorf("unexpected stdout %q", out)
	}
	if !strings.Contains(stderr, "Invalid character: 'X', only 'A', 'T', 'G', 'C'") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.HasPrefix(stderr, "usage: pymer ") {
		t.Errorf("usage line missing: %q", stderr)
	}
}

func TestRun_FastaInvalidCharacters(t *testing.T) {
	fa := filepath.Join(t.TempDir(), "bad.fa")
	if err := os.WriteFile(fa, []byte(">bad\nACGTNNRY\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := run(t, "-fasta", fa)
	if code != 2 {
		t.Fatalf("want exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "Invalid characters: 'N', 'R', 'Y'") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_FoldFailure(t *testing.T) {
	bin := fakeRNAfold(t, "echo boom >&2; exit 1")
	code, _, stderr := run(t, testSeq, "-Tm", "30", "-rnafold", bin)
	if code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(stderr, "boom") {
		t.Errorf("stderr should carry RNAfold's message: %q", stderr)
	}
}

func TestRun_Unparsable(t *testing.T) {
	bin := fakeRNAfold(t, `printf 'ACGU\n....\n'`)
	code, _, stderr := run(t, testSeq, "-Tm", "30", "-rnafold", bin)
	if code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(stderr, "couldn't parse RNAfold output") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_ShortSequenceNeedsNoFolding(t *testing.T) {
	code, out, stderr := run(t, "ACGTA", "-rnafold", "/nonexistent/RNAfold")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if n := strings.Count(out, "\n"); n != 5 {
		t.Fatalf("want 5 lines, got %d", n)
	}
	if strings.Contains(out, "bp") {
		t.Errorf("no primer expected:\n%s", out)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errB bytes.Buffer
	code := RunContext(ctx, []string{testSeq, "-Tm", "30", "-rnafold", okFold(t)}, &out, &errB)
	if code != 130 {
		t.Fatalf("want 130, got %d (%s)", code, errB.String())
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	for _, argv := range [][]string{nil, {"-h"}} {
		code, out, _ := run(t, argv...)
		if code != 0 || !strings.Contains(out, "Usage:") || !strings.Contains(out, "-min-length") {
			t.Errorf("%v: exit %d out=%q", argv, code, out)
		}
	}
	code, out, _ := run(t, "-v")
	if code != 0 || !strings.HasPrefix(out, "pymer version ") {
		t.Errorf("version: exit %d out=%q", code, out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	for _, argv := range [][]string{
		{"ACGT", "-min-length", "1"},
		{"ACGT", "-pick", "longest"},
		{"-fasta", "/nonexistent/in.fa"},
	} {
		if code, _, _ := run(t, argv...); code != 2 {
			t.Errorf("%v: want exit 2, got %d", argv, code)
		}
	}
}
