package platform

import "path/filepath"

// getMacOSInfo returns platform-specific information for macOS
func getMacOSInfo(homeDir, username string) *Info {
	return &Info{
		OS:       MacOS,
		HomeDir:  homeDir,
		Username: username,
		SystemCacheDirs: []string{
			"/Library/Caches",
			"/private/var/folders",
		},
		UserCacheDirs: []string{
			filepath.Join(homeDir, "Library/Caches"),
			filepath.Join(homeDir, ".cache"),
		},
		TempDirs: []string{
			"/tmp",
			"/private/tmp",
			"/private/var/tmp",
		},
		LogDirs: []string{
			filepath.Join(homeDir, "Library/Logs"),
			"/Library/Logs",
			"/private/var/log",
		},
		BrowserCacheDirs: []string{
			filepath.Join(homeDir, "Library/Caches/Google/Chrome"),
			filepath.Join(homeDir, "Library/Caches/Firefox"),
			filepath.Join(homeDir, "Library/Caches/com.apple.Safari"),
			filepath.Join(homeDir, "Library/Caches/Microsoft Edge"),
			filepath.Join(homeDir, "Library/Caches/com.brave.Browser"),
		},
		TrashDirs: []string{
			filepath.Join(homeDir, ".Trash"),
		},
		DownloadsDir: filepath.Join(homeDir, "Downloads"),
		DeveloperDirs: []string{
			filepath.Join(homeDir, "Library/Developer/Xcode/DerivedData"),
			filepath.Join(homeDir, "Library/Developer/Xcode/Archives"),
			filepath.Join(homeDir, "Library/Developer/CoreSimulator/Caches"),
			filepath.Join(homeDir, "Library/Caches/go-build"),
			filepath.Join(homeDir, ".gradle/caches"),
			filepath.Join(homeDir, ".npm/_cacache"),
			filepath.Join(homeDir, "Library/Caches/pip"),
			filepath.Join(homeDir, "Library/Caches/CocoaPods"),
		},
		AppDirs: []string{
			"/Applications",
			filepath.Join(homeDir, "Applications"),
		},
		AppSupportDirs: []string{
			filepath.Join(homeDir, "Library/Application Support"),
		},
		UserLaunchAgents: filepath.Join(homeDir, "Library/LaunchAgents"),
		SystemLaunchDirs: []string{
			"/Library/LaunchAgents",
			"/Library/LaunchDaemons",
		},
		JunkDirs: []string{
			filepath.Join(homeDir, "Library/Logs/DiagnosticReports"),
			filepath.Join(homeDir, "Library/Application Support/CrashReporter"),
			filepath.Join(homeDir, "Downloads"), // leftover .dmg/.pkg installers
		},
		HiddenScanRoot: homeDir,
	}
}
