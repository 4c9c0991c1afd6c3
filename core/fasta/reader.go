// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Record represents one parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// ErrNoRecord is returned when the input holds no FASTA record.
var ErrNoRecord = errors.New("fasta: no record found")

// ReadFirst returns the first record of the FASTA file at path
// ("-" = stdin; gzip detected by magic number).
func ReadFirst(ctx context.Context, path string) (Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return Record{}, err
	}
	defer rc.Close()
	return ReadFirstFrom(ctx, rc)
}

// ReadFirstFrom parses r and returns its first record. Text before the first
// header is ignored; a header followed by no sequence yields an empty Seq.
// Cancellation via ctx is checked between lines.
func ReadFirstFrom(ctx context.Context, r io.Reader) (Record, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		rec    Record
		inside bool
	)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if inside {
				return rec, nil
			}
			inside = true
			rec.ID = parseHeaderID(line[1:])
			continue
		}
		if inside {
			rec.Seq = append(rec.Seq, bytes.TrimSpace(line)...)
		}
	}
	if err := sc.Err(); err != nil {
		return Record{}, fmt.Errorf("fasta scan: %w", err)
	}
	if !inside {
		return Record{}, ErrNoRecord
	}
	return rec, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
