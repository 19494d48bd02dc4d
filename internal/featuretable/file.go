package featuretable

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes rows to path as CSV or JSONL, chosen by extension. The file
// is replaced atomically. SQLite output is handled by the featurestore package.
func WriteFile(ctx context.Context, path string, rows []Row) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var encode func(io.Writer, []Row) error
	switch format {
	case FormatCSV:
		encode = WriteCSV
	case FormatJSONL:
		encode = WriteJSONL
	default:
		return fmt.Errorf("write %s: %s output is not a flat file", path, format)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error { return encode(w, rows) })
}

// ReadFile loads a CSV or JSONL table written by WriteFile.
func ReadFile(path string) ([]Row, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature table: %w", err)
	}
	defer file.Close()
	switch format {
	case FormatCSV:
		return ReadCSV(file)
	case FormatJSONL:
		return ReadJSONL(file)
	default:
		return nil, fmt.Errorf("read %s: %s output is not a flat file", path, format)
	}
}

func writeAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
