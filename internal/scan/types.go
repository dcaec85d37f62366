// Package scan defines the data model shared by the Smart Care scan
// engine: domains, job results, live counters, progress updates and the
// final cleanup plan.
package scan

import "time"

// Domain is one of the three top-level scan domains
type Domain string

const (
	DomainCleanup      Domain = "cleanup"
	DomainPerformance  Domain = "performance"
	DomainApplications Domain = "applications"
)

// Domains lists all scan domains in the order they are processed
func Domains() []Domain {
	return []Domain{DomainCleanup, DomainPerformance, DomainApplications}
}

// Weight returns the share of overall progress this domain contributes.
// Weights across all domains sum to 1.0.
func (d Domain) Weight() float64 {
	switch d {
	case DomainCleanup:
		return 0.60
	case DomainPerformance:
		return 0.25
	case DomainApplications:
		return 0.15
	default:
		return 0
	}
}

// Title returns a human-readable domain title
func (d Domain) Title() string {
	switch d {
	case DomainCleanup:
		return "Cleanup"
	case DomainPerformance:
		return "Performance"
	case DomainApplications:
		return "Applications"
	default:
		return string(d)
	}
}

// Category identifies one category scan job
type Category string

const (
	CategorySystemCache  Category = "system_cache"
	CategoryUserCache    Category = "user_cache"
	CategoryTemp         Category = "temp"
	CategoryLogs         Category = "logs"
	CategoryBrowserCache Category = "browser_cache"
	CategoryTrash        Category = "trash"
	CategoryDevJunk      Category = "dev_junk"
	CategoryJunkFiles    Category = "junk_files"
	CategoryDownloads    Category = "downloads"
	CategoryHiddenSpace  Category = "hidden_space"
)

// CategoryJobResult is the output of one scanner invocation.
// Immutable once returned by a scanner.
type CategoryJobResult struct {
	Category     Category
	Description  string
	TotalBytes   int64
	ItemCount    int
	Paths        []string
	SafeToDelete bool
}

// LiveCounters are monotonically non-decreasing counters for one run.
// Concurrent producers report intermediate totals, so merging takes the
// pairwise maximum per field, never the sum.
type LiveCounters struct {
	BytesFound   int64
	FlaggedCount int
	AppsScanned  int
}

// Merge folds another snapshot into c by taking per-field maximums
func (c *LiveCounters) Merge(other LiveCounters) {
	if other.BytesFound > c.BytesFound {
		c.BytesFound = other.BytesFound
	}
	if other.FlaggedCount > c.FlaggedCount {
		c.FlaggedCount = other.FlaggedCount
	}
	if other.AppsScanned > c.AppsScanned {
		c.AppsScanned = other.AppsScanned
	}
}

// ProgressUpdate is delivered to the caller at each meaningful step of a
// run. Overall never regresses between consecutive updates.
type ProgressUpdate struct {
	Domain      Domain
	Title       string
	Detail      string
	Overall     float64 // [0,1]
	CurrentItem string
	Stage       int // 1-based index of the current domain
	StageCount  int
	Counters    LiveCounters
}

// ItemAction describes what applying a cleanup item does
type ItemAction string

const (
	ActionDeletePaths     ItemAction = "delete_paths"
	ActionRunOptimization ItemAction = "run_optimization"
	ActionNone            ItemAction = "none"
)

// CleanupItem is one actionable finding in the final plan. Size and
// Paths reflect the post-dedup state: every path is claimed exactly once
// across the whole run.
type CleanupItem struct {
	ID            string
	Domain        Domain
	GroupID       string
	Title         string
	Subtitle      string
	Size          int64
	Count         int
	SafeToRun     bool
	IsRecommended bool
	Action        ItemAction
	Paths         []string
	ScoreImpact   int
}

// CleanupGroup is a presentation-level grouping of items
type CleanupGroup struct {
	ID          string
	Domain      Domain
	Title       string
	Description string
	Items       []CleanupItem
}

// TotalSize sums the sizes of all items in the group
func (g *CleanupGroup) TotalSize() int64 {
	var total int64
	for _, item := range g.Items {
		total += item.Size
	}
	return total
}

// Result is the immutable output of one full orchestration run
type Result struct {
	Timestamp time.Time
	Duration  time.Duration
	Domains   map[Domain][]CleanupGroup
}

// TotalSize sums item sizes across every domain and group
func (r *Result) TotalSize() int64 {
	var total int64
	for _, groups := range r.Domains {
		for i := range groups {
			total += groups[i].TotalSize()
		}
	}
	return total
}

// RecommendedSize sums the sizes of recommended items only
func (r *Result) RecommendedSize() int64 {
	var total int64
	for _, groups := range r.Domains {
		for _, g := range groups {
			for _, item := range g.Items {
				if item.IsRecommended {
					total += item.Size
				}
			}
		}
	}
	return total
}

// ItemCount counts items across every domain and group
func (r *Result) ItemCount() int {
	count := 0
	for _, groups := range r.Domains {
		for _, g := range groups {
			count += len(g.Items)
		}
	}
	return count
}

// HiddenItem is one entry reported by the hidden-space scanner
type HiddenItem struct {
	Path     string
	Size     int64
	Category string
}

// HiddenSpaceReport is the output of a hidden-space scan
type HiddenSpaceReport struct {
	Items     []HiddenItem
	TotalSize int64
}

// AppInfo describes one installed application bundle
type AppInfo struct {
	Name     string
	Path     string
	Size     int64
	LastUsed time.Time
}

// DuplicateAppGroup groups app bundles that appear to be copies of the
// same application
type DuplicateAppGroup struct {
	Name string
	Apps []AppInfo
}

// OrphanedFile is an application support leftover with no matching app
type OrphanedFile struct {
	Path    string
	Size    int64
	AppName string
}

// AppIssueReport is the output of the app-issue scanner
type AppIssueReport struct {
	UnusedApps         []AppInfo
	DuplicateAppGroups []DuplicateAppGroup
	LargeApps          []AppInfo
	OrphanedFiles      []OrphanedFile
	AppsScanned        int
}

// LoginItem is one login item or launch agent entry
type LoginItem struct {
	Label     string
	Path      string
	Size      int64
	UserLevel bool // true when under the user's own LaunchAgents
}

// MaintenanceAction is one fixed system maintenance task
type MaintenanceAction struct {
	ID          string
	Title       string
	Description string
}
