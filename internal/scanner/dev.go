package scanner

import (
	"context"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// ScanDevJunk scans developer tool caches and build artifact
// directories (derived data, package manager caches, build caches)
func (s *Scanner) ScanDevJunk(ctx context.Context) scan.CategoryJobResult {
	return s.scanDirEntries(ctx, scan.CategoryDevJunk, "Developer caches and build artifacts",
		s.platformInfo.DeveloperDirs, true)
}
