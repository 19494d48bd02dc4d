//go:build !linux

package lyricscache

import "os"

func datasync(f *os.File) error {
	return f.Sync()
}
