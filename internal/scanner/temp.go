package scanner

import (
	"context"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// ScanTemp scans temporary file directories
func (s *Scanner) ScanTemp(ctx context.Context) scan.CategoryJobResult {
	return s.scanDirEntries(ctx, scan.CategoryTemp, "Temporary files",
		s.platformInfo.TempDirs, true)
}

// ScanTrash scans trash directories
func (s *Scanner) ScanTrash(ctx context.Context) scan.CategoryJobResult {
	return s.scanDirEntries(ctx, scan.CategoryTrash, "Trash contents",
		s.platformInfo.TrashDirs, true)
}
