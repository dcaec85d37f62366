package platform

import (
	"os"
	"path/filepath"
)

// getLinuxInfo returns platform-specific information for Linux
func getLinuxInfo(homeDir, username string) *Info {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(homeDir, ".cache")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local/share")
	}

	return &Info{
		OS:       Linux,
		HomeDir:  homeDir,
		Username: username,
		SystemCacheDirs: []string{
			"/var/cache",
		},
		UserCacheDirs: []string{
			cacheHome,
		},
		TempDirs: []string{
			"/tmp",
			"/var/tmp",
		},
		LogDirs: []string{
			"/var/log",
			filepath.Join(dataHome, "logs"),
		},
		BrowserCacheDirs: []string{
			filepath.Join(cacheHome, "google-chrome"),
			filepath.Join(cacheHome, "chromium"),
			filepath.Join(cacheHome, "mozilla/firefox"),
		},
		TrashDirs: []string{
			filepath.Join(dataHome, "Trash/files"),
		},
		DownloadsDir: filepath.Join(homeDir, "Downloads"),
		DeveloperDirs: []string{
			filepath.Join(cacheHome, "go-build"),
			filepath.Join(homeDir, ".gradle/caches"),
			filepath.Join(homeDir, ".npm/_cacache"),
			filepath.Join(cacheHome, "pip"),
			filepath.Join(homeDir, ".cargo/registry/cache"),
		},
		AppDirs: []string{
			"/usr/share/applications",
			filepath.Join(dataHome, "applications"),
		},
		AppSupportDirs: []string{
			dataHome,
		},
		UserLaunchAgents: filepath.Join(homeDir, ".config/autostart"),
		SystemLaunchDirs: []string{
			"/etc/xdg/autostart",
		},
		JunkDirs: []string{
			filepath.Join(homeDir, "Downloads"),
			"/var/crash",
		},
		HiddenScanRoot: homeDir,
	}
}
