package scanner

import (
	"context"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// ScanSystemCache scans system-level cache directories
func (s *Scanner) ScanSystemCache(ctx context.Context) scan.CategoryJobResult {
	return s.scanDirEntries(ctx, scan.CategorySystemCache, "System cache files",
		s.platformInfo.SystemCacheDirs, true)
}

// ScanUserCache scans per-user cache directories
func (s *Scanner) ScanUserCache(ctx context.Context) scan.CategoryJobResult {
	return s.scanDirEntries(ctx, scan.CategoryUserCache, "User cache files",
		s.platformInfo.UserCacheDirs, true)
}

// ScanBrowserCaches scans browser cache directories
func (s *Scanner) ScanBrowserCaches(ctx context.Context) scan.CategoryJobResult {
	return s.scanDirEntries(ctx, scan.CategoryBrowserCache, "Browser caches",
		s.platformInfo.BrowserCacheDirs, true)
}
