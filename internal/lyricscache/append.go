package lyricscache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Append writes rec as one JSON line at the end of the cache file, creating
// the file and its directory when needed. The line is synced to disk before
// the exclusive lock is released.
func Append(ctx context.Context, path string, rec Record) error {
	if rec.CanonicalKey == "" {
		return fmt.Errorf("append cache record: canonical key is empty")
	}
	line, err := encodeLine(rec)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}

	unlock, err := lockExclusive(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open cache for append: %w", err)
	}
	if _, err := file.Write(line); err != nil {
		file.Close()
		return fmt.Errorf("append cache record: %w", err)
	}
	if err := datasync(file); err != nil {
		file.Close()
		return fmt.Errorf("sync cache: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}

// encodeLine marshals rec without HTML escaping so lyrics stay readable.
func encodeLine(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encode cache record: %w", err)
	}
	return buf.Bytes(), nil
}
