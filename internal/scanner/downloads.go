package scanner

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// ScanDownloadsByAge splits the downloads folder into entries older and
// newer than the configured age threshold. Neither side is safe to
// auto-delete: downloads always need user review.
func (s *Scanner) ScanDownloadsByAge(ctx context.Context) (old, recent scan.CategoryJobResult) {
	threshold := time.Duration(s.config.DownloadsAgeDays) * 24 * time.Hour
	cutoff := time.Now().Add(-threshold)

	old = scan.CategoryJobResult{
		Category:    scan.CategoryDownloads,
		Description: "Old downloads",
	}
	recent = scan.CategoryJobResult{
		Category:    scan.CategoryDownloads,
		Description: "Recent downloads",
	}

	dir := s.platformInfo.DownloadsDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return old, recent
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return old, recent
		}

		path := filepath.Join(dir, entry.Name())
		if s.excluded(path) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		size := s.sizes.Size(path)
		if size == 0 {
			continue
		}

		target := &recent
		if info.ModTime().Before(cutoff) {
			target = &old
		}
		target.Paths = append(target.Paths, path)
		target.TotalBytes += size
		target.ItemCount++
	}

	return old, recent
}
