package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// junkExtensions are leftovers safe to remove: installer images and
// crash/diagnostic reports
var junkExtensions = []string{".dmg", ".pkg", ".iso", ".crash", ".ips", ".diag", ".spin"}

// ScanJunkFiles scans for generic junk: leftover installers in the
// downloads folder and crash report directories.
func (s *Scanner) ScanJunkFiles(ctx context.Context) scan.CategoryJobResult {
	result := scan.CategoryJobResult{
		Category:     scan.CategoryJunkFiles,
		Description:  "Leftover installers and diagnostic reports",
		SafeToDelete: true,
	}

	for _, root := range s.platformInfo.JunkDirs {
		if ctx.Err() != nil {
			return result
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !isJunkFile(entry.Name()) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if s.excluded(path) {
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

func isJunkFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range junkExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
