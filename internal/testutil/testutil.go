// Package testutil provides test fixtures for smartcare tests. All
// file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fenilsonani/smartcare/internal/platform"
)

// Fixture holds a temporary directory tree shaped like the directories
// the scan engine walks
type Fixture struct {
	T       *testing.T
	RootDir string

	SystemCacheDir  string
	UserCacheDir    string
	TempDir         string
	LogsDir         string
	BrowserDir      string
	TrashDir        string
	DownloadsDir    string
	DevDir          string
	AppsDir         string
	AppSupportDir   string
	UserAgentsDir   string
	SystemAgentsDir string
}

// NewFixture creates a fixture with the standard directory structure
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	root := t.TempDir()

	f := &Fixture{
		T:               t,
		RootDir:         root,
		SystemCacheDir:  filepath.Join(root, "syscache"),
		UserCacheDir:    filepath.Join(root, "cache"),
		TempDir:         filepath.Join(root, "tmp"),
		LogsDir:         filepath.Join(root, "logs"),
		BrowserDir:      filepath.Join(root, "browser"),
		TrashDir:        filepath.Join(root, "trash"),
		DownloadsDir:    filepath.Join(root, "downloads"),
		DevDir:          filepath.Join(root, "derived"),
		AppsDir:         filepath.Join(root, "apps"),
		AppSupportDir:   filepath.Join(root, "appsupport"),
		UserAgentsDir:   filepath.Join(root, "launchagents-user"),
		SystemAgentsDir: filepath.Join(root, "launchagents-system"),
	}

	dirs := []string{
		f.SystemCacheDir, f.UserCacheDir, f.TempDir, f.LogsDir,
		f.BrowserDir, f.TrashDir, f.DownloadsDir, f.DevDir,
		f.AppsDir, f.AppSupportDir, f.UserAgentsDir, f.SystemAgentsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return f
}

// PlatformInfo returns a platform.Info wired to the fixture tree
func (f *Fixture) PlatformInfo() *platform.Info {
	return &platform.Info{
		OS:               platform.Detect(),
		HomeDir:          f.RootDir,
		Username:         "testuser",
		SystemCacheDirs:  []string{f.SystemCacheDir},
		UserCacheDirs:    []string{f.UserCacheDir},
		TempDirs:         []string{f.TempDir},
		LogDirs:          []string{f.LogsDir},
		BrowserCacheDirs: []string{f.BrowserDir},
		TrashDirs:        []string{f.TrashDir},
		DownloadsDir:     f.DownloadsDir,
		DeveloperDirs:    []string{f.DevDir},
		AppDirs:          []string{f.AppsDir},
		AppSupportDirs:   []string{f.AppSupportDir},
		UserLaunchAgents: f.UserAgentsDir,
		SystemLaunchDirs: []string{f.SystemAgentsDir},
		JunkDirs:         []string{f.DownloadsDir},
		HiddenScanRoot:   f.RootDir,
	}
}

// CreateFile creates a file of the given size under the fixture root
// and returns its absolute path
func (f *Fixture) CreateFile(relPath string, size int) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, make([]byte, size), 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateFileWithContent creates a file with explicit content
func (f *Fixture) CreateFileWithContent(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateFileWithAge creates a file and backdates its modification time
func (f *Fixture) CreateFileWithAge(relPath string, size int, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, size)
	oldTime := time.Now().Add(-age)
	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateDirWithAge creates a directory and backdates its modification time
func (f *Fixture) CreateDirWithAge(relPath string, age time.Duration) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}
	oldTime := time.Now().Add(-age)
	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set directory time for %s: %v", fullPath, err)
	}
	return fullPath
}
