package platform

import (
	"errors"
	"os"
	"os/user"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// ErrUnsupportedPlatform is returned on platforms the scanner does not know
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Info contains platform-specific information and paths used by the
// scan engine
type Info struct {
	OS       Platform
	HomeDir  string
	Username string

	SystemCacheDirs  []string
	UserCacheDirs    []string
	TempDirs         []string
	LogDirs          []string
	BrowserCacheDirs []string
	TrashDirs        []string
	DownloadsDir     string
	DeveloperDirs    []string // roots scanned for build artifacts
	AppDirs          []string // application bundle locations
	AppSupportDirs   []string // per-app support data, for orphan detection
	UserLaunchAgents string
	SystemLaunchDirs []string
	JunkDirs         []string // roots scanned for leftover installers, crash reports
	HiddenScanRoot   string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information. Failing to resolve the
// current user is the one unrecoverable setup error: without a home
// directory no scan domain can start.
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	return infoFor(Detect(), currentUser.HomeDir, currentUser.Username)
}

// infoFor builds an Info for a specific platform and home directory
func infoFor(p Platform, homeDir, username string) (*Info, error) {
	switch p {
	case MacOS:
		return getMacOSInfo(homeDir, username), nil
	case Linux:
		return getLinuxInfo(homeDir, username), nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}

// GetUserConfigDir returns the directory holding the smartcare config file
func GetUserConfigDir() (string, error) {
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return configDir, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return "", err
	}
	return currentUser.HomeDir + "/.config", nil
}
