package lyricscache

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Decode parses a line-delimited cache stream. Blank lines and records
// without a canonical key are skipped; any other unparsable line aborts the
// read with a *MalformedRecordError.
func Decode(r io.Reader) (*Index, error) {
	ix := NewIndex()
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			ix.stats.Lines++
			if err := ix.decodeLine(lineNo, line); err != nil {
				return nil, err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return ix, nil
			}
			return nil, fmt.Errorf("read cache line %d: %w", lineNo+1, readErr)
		}
	}
}

func (ix *Index) decodeLine(lineNo int, line []byte) error {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		ix.stats.Blank++
		return nil
	}
	if trimmed[0] != '{' {
		return &MalformedRecordError{Line: lineNo, Err: errors.New("expected a JSON object")}
	}
	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return &MalformedRecordError{Line: lineNo, Err: err}
	}
	if rec.CanonicalKey == "" {
		ix.stats.MissingKey++
		return nil
	}
	ix.Put(rec)
	return nil
}

// Read loads the cache at path under a shared lock. A missing file is
// reported as ErrCacheNotFound.
func Read(ctx context.Context, path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCacheNotFound, path)
		}
		return nil, fmt.Errorf("stat cache: %w", err)
	}

	unlock, err := lockShared(ctx, path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCacheNotFound, path)
		}
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer file.Close()

	ix, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ix, nil
}

// LoadForFetch is Read for the fetch path: a missing cache is an empty index.
func LoadForFetch(ctx context.Context, path string) (*Index, error) {
	ix, err := Read(ctx, path)
	if errors.Is(err, ErrCacheNotFound) {
		return NewIndex(), nil
	}
	return ix, err
}
