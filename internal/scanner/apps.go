package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/smartcare/internal/config"
	"github.com/fenilsonani/smartcare/internal/platform"
	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/sizer"
	"github.com/fenilsonani/smartcare/pkg/utils"
)

// AppIssueScanner finds application-level cleanup opportunities:
// unused apps, duplicate bundles, unusually large apps and orphaned
// support data left behind by uninstalled apps.
type AppIssueScanner struct {
	config       *config.Config
	platformInfo *platform.Info
	sizes        *sizer.Resolver
}

// NewAppIssueScanner creates an AppIssueScanner
func NewAppIssueScanner(cfg *config.Config, platformInfo *platform.Info, sizes *sizer.Resolver) *AppIssueScanner {
	return &AppIssueScanner{
		config:       cfg,
		platformInfo: platformInfo,
		sizes:        sizes,
	}
}

// Scan enumerates installed applications and derives the issue report
func (a *AppIssueScanner) Scan(ctx context.Context) scan.AppIssueReport {
	var report scan.AppIssueReport

	apps := a.listApps(ctx)
	report.AppsScanned = len(apps)

	largeMin, err := utils.ParseSize(a.config.LargeAppMinSize)
	if err != nil {
		largeMin = utils.GB
	}
	unusedCutoff := time.Now().Add(-time.Duration(a.config.UnusedAppDays) * 24 * time.Hour)

	byName := make(map[string][]scan.AppInfo)
	for _, app := range apps {
		if app.Size >= largeMin {
			report.LargeApps = append(report.LargeApps, app)
		}
		if !app.LastUsed.IsZero() && app.LastUsed.Before(unusedCutoff) {
			report.UnusedApps = append(report.UnusedApps, app)
		}
		byName[app.Name] = append(byName[app.Name], app)
	}

	for name, group := range byName {
		if len(group) < 2 {
			continue
		}
		if confirmed := confirmDuplicates(group); len(confirmed) >= 2 {
			report.DuplicateAppGroups = append(report.DuplicateAppGroups, scan.DuplicateAppGroup{
				Name: name,
				Apps: confirmed,
			})
		}
	}

	report.OrphanedFiles = a.findOrphans(ctx, apps)

	return report
}

// listApps enumerates application bundles across all app directories
func (a *AppIssueScanner) listApps(ctx context.Context) []scan.AppInfo {
	var apps []scan.AppInfo

	for _, dir := range a.platformInfo.AppDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if ctx.Err() != nil {
				return apps
			}
			name := entry.Name()
			if !strings.HasSuffix(name, ".app") && !entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, name)
			info, err := entry.Info()
			if err != nil {
				continue
			}
			apps = append(apps, scan.AppInfo{
				Name:     strings.TrimSuffix(name, ".app"),
				Path:     path,
				Size:     a.sizes.Size(path),
				LastUsed: info.ModTime(),
			})
		}
	}

	return apps
}

// confirmDuplicates keeps only same-named apps whose main binaries
// hash identically. Same name alone is not proof: two versions of an
// app share a name but differ on disk.
func confirmDuplicates(group []scan.AppInfo) []scan.AppInfo {
	hashes := make(map[string][]scan.AppInfo)
	for _, app := range group {
		binary := mainBinary(app)
		if binary == "" {
			continue
		}
		h, err := utils.HashFileQuick(binary, 64*1024)
		if err != nil {
			continue
		}
		hashes[h] = append(hashes[h], app)
	}

	for _, same := range hashes {
		if len(same) >= 2 {
			return same
		}
	}
	return nil
}

// mainBinary locates an app bundle's executable, or the entry itself
// when it is a plain file
func mainBinary(app scan.AppInfo) string {
	macos := filepath.Join(app.Path, "Contents", "MacOS")
	entries, err := os.ReadDir(macos)
	if err == nil && len(entries) > 0 {
		return filepath.Join(macos, entries[0].Name())
	}
	if info, err := os.Stat(app.Path); err == nil && !info.IsDir() {
		return app.Path
	}
	return ""
}

// findOrphans reports support directories whose name matches no
// installed application
func (a *AppIssueScanner) findOrphans(ctx context.Context, apps []scan.AppInfo) []scan.OrphanedFile {
	installed := make(map[string]bool, len(apps))
	for _, app := range apps {
		installed[normalizeAppName(app.Name)] = true
	}

	var orphans []scan.OrphanedFile
	for _, dir := range a.platformInfo.AppSupportDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if ctx.Err() != nil {
				return orphans
			}
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasPrefix(name, "com.apple.") || isSystemSupportDir(name) {
				continue
			}
			if installed[normalizeAppName(name)] {
				continue
			}
			path := filepath.Join(dir, name)
			size := a.sizes.Size(path)
			if size == 0 {
				continue
			}
			orphans = append(orphans, scan.OrphanedFile{
				Path:    path,
				Size:    size,
				AppName: name,
			})
		}
	}

	return orphans
}

// systemSupportDirs are support entries that belong to the OS or to
// apps that do not install a bundle
var systemSupportDirs = map[string]bool{
	"AddressBook":    true,
	"CallHistoryDB":  true,
	"CloudDocs":      true,
	"CrashReporter":  true,
	"Dock":           true,
	"FileProvider":   true,
	"iCloud":         true,
	"Knowledge":      true,
	"MobileSync":     true,
	"SyncServices":   true,
}

func isSystemSupportDir(name string) bool {
	return systemSupportDirs[name]
}

func normalizeAppName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")
	return name
}
