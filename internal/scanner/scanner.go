// Package scanner implements the category scanners the orchestration
// engine drives: cache, temp, log, browser, trash, downloads, junk,
// developer-artifact, hidden-space, application and login-item scans.
// Scanners are read-only and degrade to empty results on I/O errors;
// they never abort a run.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/smartcare/internal/config"
	"github.com/fenilsonani/smartcare/internal/platform"
	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/sizer"
)

// Scanner runs category scans against the local filesystem
type Scanner struct {
	config       *config.Config
	platformInfo *platform.Info
	sizes        *sizer.Resolver
}

// New creates a new Scanner
func New(cfg *config.Config, platformInfo *platform.Info, sizes *sizer.Resolver) *Scanner {
	return &Scanner{
		config:       cfg,
		platformInfo: platformInfo,
		sizes:        sizes,
	}
}

// Scan runs the scanner for one category. Unknown categories and
// ordinary "directory not found" cases return a zero-size result.
func (s *Scanner) Scan(ctx context.Context, category scan.Category) scan.CategoryJobResult {
	switch category {
	case scan.CategorySystemCache:
		return s.ScanSystemCache(ctx)
	case scan.CategoryUserCache:
		return s.ScanUserCache(ctx)
	case scan.CategoryTemp:
		return s.ScanTemp(ctx)
	case scan.CategoryLogs:
		return s.ScanLogs(ctx)
	case scan.CategoryBrowserCache:
		return s.ScanBrowserCaches(ctx)
	case scan.CategoryTrash:
		return s.ScanTrash(ctx)
	case scan.CategoryDevJunk:
		return s.ScanDevJunk(ctx)
	default:
		return scan.CategoryJobResult{Category: category}
	}
}

// scanDirEntries sizes each immediate child of every root and collects
// them into one result. Roots that do not exist contribute nothing.
func (s *Scanner) scanDirEntries(ctx context.Context, category scan.Category, description string, roots []string, safe bool) scan.CategoryJobResult {
	result := scan.CategoryJobResult{
		Category:     category,
		Description:  description,
		SafeToDelete: safe,
	}

	for _, root := range roots {
		if ctx.Err() != nil {
			return result
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			// Missing or unreadable root: skip, never fail the scan
			continue
		}

		for _, entry := range entries {
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

// excluded reports whether path matches a configured exclude pattern
func (s *Scanner) excluded(path string) bool {
	for _, pattern := range s.config.ExcludePatterns {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		trimmed := strings.Trim(pattern, "*")
		if trimmed != "" && strings.Contains(path, trimmed) {
			return true
		}
	}
	return false
}
