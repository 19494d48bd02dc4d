package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"lyricfeat/internal/config"
	"lyricfeat/internal/featuretable"
	"lyricfeat/internal/genius"
	"lyricfeat/internal/lyricscache"
	"lyricfeat/internal/services"
)

const geniusCheckTimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCache decodes the whole cache. A missing cache passes because the
// first fetch creates it.
func CheckCache(ctx context.Context, path string) Result {
	const name = "Lyric cache"

	index, err := lyricscache.Read(ctx, path)
	switch {
	case errors.Is(err, lyricscache.ErrCacheNotFound):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	case err != nil:
		return Result{Name: name, Detail: err.Error()}
	}
	stats := index.Stats()
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d records, %d lines)", path, index.Len(), stats.Lines),
	}
}

// CheckOutputFormat verifies the output extension names a known format.
func CheckOutputFormat(path string) Result {
	const name = "Output format"

	format, err := featuretable.FormatForPath(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: string(format)}
}

// CheckToken reports whether a Genius token is configured. The result is
// optional since only fetch needs a token.
func CheckToken(token string) Result {
	const name = "Genius token"

	if strings.TrimSpace(token) == "" {
		return Result{Name: name, Optional: true, Detail: "missing (required for fetch; set GENIUS_ACCESS_TOKEN)"}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: "configured"}
}

// CheckGenius runs one search with no retries to confirm the API is
// reachable and accepts the token.
func CheckGenius(ctx context.Context, cfg config.Genius) Result {
	const name = "Genius API"

	checkCtx, cancel := context.WithTimeout(ctx, geniusCheckTimeout)
	defer cancel()

	client, err := genius.New(genius.Config{
		AccessToken: cfg.AccessToken,
		BaseURL:     cfg.BaseURL,
		UserAgent:   cfg.UserAgent,
		Timeout:     geniusCheckTimeout,
		Retries:     0,
	})
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if _, err := client.Search(checkCtx, "hello"); err != nil {
		return Result{Name: name, Detail: summarizeGeniusError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

func summarizeGeniusError(err error) string {
	if errors.Is(err, services.ErrConfiguration) {
		return "auth failed (invalid access token)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "search timed out (Genius API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "search timed out (Genius API unreachable)"
	}
	var statusErr *genius.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("search failed (%d)", statusErr.Code)
	}
	return err.Error()
}
