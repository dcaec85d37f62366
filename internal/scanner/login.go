package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/smartcare/internal/platform"
	"github.com/fenilsonani/smartcare/internal/scan"
)

// LoginItemScanner enumerates launch agents and daemons that start at
// login. User-level agents can be removed safely; system-level entries
// may belong to the OS or installed services and need review.
type LoginItemScanner struct {
	platformInfo *platform.Info
}

// NewLoginItemScanner creates a LoginItemScanner
func NewLoginItemScanner(platformInfo *platform.Info) *LoginItemScanner {
	return &LoginItemScanner{platformInfo: platformInfo}
}

// Scan lists all login items, user-level entries first
func (l *LoginItemScanner) Scan(ctx context.Context) []scan.LoginItem {
	items := l.scanDir(ctx, l.platformInfo.UserLaunchAgents, true)
	for _, dir := range l.platformInfo.SystemLaunchDirs {
		items = append(items, l.scanDir(ctx, dir, false)...)
	}
	return items
}

func (l *LoginItemScanner) scanDir(ctx context.Context, dir string, userLevel bool) []scan.LoginItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var items []scan.LoginItem
	for _, entry := range entries {
		if ctx.Err() != nil {
			return items
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".plist") && !strings.HasSuffix(name, ".desktop") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, scan.LoginItem{
			Label:     strings.TrimSuffix(strings.TrimSuffix(name, ".plist"), ".desktop"),
			Path:      filepath.Join(dir, name),
			Size:      info.Size(),
			UserLevel: userLevel,
		})
	}

	return items
}
