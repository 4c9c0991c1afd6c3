package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NNnn
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "x.fa") // no .gz suffix: magic number decides
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestReadFirstPlain(t *testing.T) {
	rec, err := ReadFirst(context.Background(), writeFile(t, "x.fa", []byte(plain)))
	if err != nil {
		t.Fatalf("ReadFirst: %v", err)
	}
	if rec.ID != "seq1" || string(rec.Seq) != "ACGTacgt" {
		t.Fatalf("got %q %q", rec.ID, rec.Seq)
	}
}

func TestReadFirstGzip(t *testing.T) {
	rec, err := ReadFirst(context.Background(), writeGz(t, plain))
	if err != nil {
		t.Fatalf("ReadFirst gz: %v", err)
	}
	if rec.ID != "seq1" || string(rec.Seq) != "ACGTacgt" {
		t.Fatalf("gzip parse failed: %q %q", rec.ID, rec.Seq)
	}
}

func TestReadFirstStdin(t *testing.T) {
	old := Stdin
	defer func() { Stdin = old }()
	Stdin = strings.NewReader(">only\nGATTACA\n")
	rec, err := ReadFirst(context.Background(), "-")
	if err != nil {
		t.Fatalf("ReadFirst stdin: %v", err)
	}
	if rec.ID != "only" || string(rec.Seq) != "GATTACA" {
		t.Fatalf("got %q %q", rec.ID, rec.Seq)
	}
}

func TestReadFirstErrors(t *testing.T) {
	t.Run("no record", func(t *testing.T) {
		_, err := ReadFirstFrom(context.Background(), strings.NewReader("ACGT\n"))
		if !errors.Is(err, ErrNoRecord) {
			t.Fatalf("want ErrNoRecord, got %v", err)
		}
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFirst(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("want not-exist, got %v", err)
		}
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ReadFirstFrom(ctx, strings.NewReader(plain))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	})
}
