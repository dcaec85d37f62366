package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// logExtensions are file suffixes treated as log output
var logExtensions = []string{".log", ".log.gz", ".log.1", ".out", ".crash"}

// ScanLogs scans log directories for log files
func (s *Scanner) ScanLogs(ctx context.Context) scan.CategoryJobResult {
	result := scan.CategoryJobResult{
		Category:     scan.CategoryLogs,
		Description:  "Log files",
		SafeToDelete: true,
	}

	for _, root := range s.platformInfo.LogDirs {
		if ctx.Err() != nil {
			return result
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())
			if s.excluded(path) {
				continue
			}
			// Whole per-app log directories count; loose files only
			// when they look like logs
			if !entry.IsDir() && !isLogFile(entry.Name()) {
				continue
			}
			size := s.sizes.Size(path)
			if size == 0 {
				continue
			}
			result.Paths = append(result.Paths, path)
			result.TotalBytes += size
			result.ItemCount++
		}
	}

	return result
}

func isLogFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range logExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
