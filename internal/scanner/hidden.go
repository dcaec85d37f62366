package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/sizer"
)

// HiddenSpaceScanner finds disk space hidden in dot-directories and
// other entries a user never sees in a file browser.
type HiddenSpaceScanner struct {
	sizes *sizer.Resolver
}

// NewHiddenSpaceScanner creates a HiddenSpaceScanner
func NewHiddenSpaceScanner(sizes *sizer.Resolver) *HiddenSpaceScanner {
	return &HiddenSpaceScanner{sizes: sizes}
}

// knownHiddenCategories maps well-known hidden directory names to a
// display category
var knownHiddenCategories = map[string]string{
	".cache":         "Caches",
	".npm":           "Package managers",
	".yarn":          "Package managers",
	".gradle":        "Build tools",
	".m2":            "Build tools",
	".cargo":         "Build tools",
	".rustup":        "Toolchains",
	".docker":        "Containers",
	".Trash":         "Trash",
	".local":         "Application data",
	".vscode":        "Editors",
	".android":       "SDKs",
	".cocoapods":     "Build tools",
	".node-gyp":      "Build tools",
	".composer":      "Package managers",
	".gem":           "Package managers",
	".pyenv":         "Toolchains",
	".nvm":           "Toolchains",
	".ollama":        "Models",
	".minikube":      "Containers",
	".vagrant.d":     "Virtual machines",
	".terraform.d":   "Infrastructure",
	".kube":          "Infrastructure",
	".cpan":          "Package managers",
	".electron":      "Caches",
	".electron-gyp":  "Build tools",
	".sonar":         "Caches",
	".swiftpm":       "Build tools",
}

// Scan walks the immediate children of root and reports hidden entries
// with their sizes. When includeDotfiles is false only well-known
// space-heavy hidden directories are reported; when true every
// dot-entry is.
func (h *HiddenSpaceScanner) Scan(ctx context.Context, root string, includeDotfiles bool) scan.HiddenSpaceReport {
	var report scan.HiddenSpaceReport

	entries, err := os.ReadDir(root)
	if err != nil {
		return report
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return report
		}

		name := entry.Name()
		if !strings.HasPrefix(name, ".") {
			continue
		}

		category, known := knownHiddenCategories[name]
		if !known {
			if !includeDotfiles {
				continue
			}
			category = "Other hidden"
		}

		path := filepath.Join(root, name)
		size := h.sizes.Size(path)
		if size == 0 {
			continue
		}

		report.Items = append(report.Items, scan.HiddenItem{
			Path:     path,
			Size:     size,
			Category: category,
		})
		report.TotalSize += size
	}

	return report
}
