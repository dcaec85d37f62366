// Package orchestrator drives one full Smart Care scan: it fans
// category jobs out under a bounded runner, merges every finding
// through the shared path ledger so overlapping paths are never counted
// twice, folds per-domain progress into one monotonic percentage and
// compiles the final domain → group → item plan.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fenilsonani/smartcare/internal/config"
	"github.com/fenilsonani/smartcare/internal/ledger"
	"github.com/fenilsonani/smartcare/internal/platform"
	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/sizer"
)

// Share of the cleanup domain's local progress covered by the bounded
// category runner; the rest is split across the extra scans.
const (
	categoryPhaseWeight = 0.72
	extraPhaseWeight    = 0.28
	extraScanCount      = 3
)

// State is the run state machine. Transitions are forward-only and a
// run is single-shot.
type State int32

const (
	StateNotStarted State = iota
	StateScanningCleanup
	StateScanningPerformance
	StateScanningApplications
	StateCompleted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateScanningCleanup:
		return "scanning_cleanup"
	case StateScanningPerformance:
		return "scanning_performance"
	case StateScanningApplications:
		return "scanning_applications"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyRan is returned when Run is called a second time
	ErrAlreadyRan = errors.New("scan run already started")
	// ErrNoHomeDir is the run-level failure when no domain can start
	ErrNoHomeDir = errors.New("home directory unavailable, cannot scan")
)

// CategoryScanner runs one category scan job
type CategoryScanner interface {
	Scan(ctx context.Context, category scan.Category) scan.CategoryJobResult
}

// JunkScanner finds generic leftover junk files
type JunkScanner interface {
	ScanJunkFiles(ctx context.Context) scan.CategoryJobResult
}

// DownloadsScanner splits the downloads folder by age
type DownloadsScanner interface {
	ScanDownloadsByAge(ctx context.Context) (old, recent scan.CategoryJobResult)
}

// HiddenScanner reports disk space hidden under dot-directories
type HiddenScanner interface {
	Scan(ctx context.Context, root string, includeDotfiles bool) scan.HiddenSpaceReport
}

// AppScanner reports application-level issues
type AppScanner interface {
	Scan(ctx context.Context) scan.AppIssueReport
}

// LoginScanner enumerates login items and launch agents
type LoginScanner interface {
	Scan(ctx context.Context) []scan.LoginItem
}

// Deps are the scanner collaborators, injected explicitly so the core
// stays testable in isolation
type Deps struct {
	Categories CategoryScanner
	Junk       JunkScanner
	Downloads  DownloadsScanner
	Hidden     HiddenScanner
	Apps       AppScanner
	Login      LoginScanner
}

// Orchestrator drives one full scan run end-to-end
type Orchestrator struct {
	config       *config.Config
	platformInfo *platform.Info
	deps         Deps

	emitter *Emitter
	builder *ItemBuilder
	runner  *CategoryRunner
	ledger  *ledger.Ledger

	state atomic.Int32
}

// New creates an Orchestrator for a single run. The ledger and item
// builder are created fresh here and discarded with the orchestrator;
// nothing persists between runs.
func New(cfg *config.Config, platformInfo *platform.Info, deps Deps, sizes *sizer.Resolver, onProgress EmitFunc) *Orchestrator {
	var home string
	if platformInfo != nil {
		home = platformInfo.HomeDir
	}
	l := ledger.NewWithHome(home)

	return &Orchestrator{
		config:       cfg,
		platformInfo: platformInfo,
		deps:         deps,
		emitter:      NewEmitter(onProgress),
		builder:      NewItemBuilder(l, sizes),
		runner:       NewCategoryRunner(cfg.Concurrency),
		ledger:       l,
	}
}

// State returns the current run state
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Run executes the three scan domains in sequence and returns the
// final result. A cancelled context discards all partial results. A
// single scanner failing never fails the run; only the inability to
// start any domain does.
func (o *Orchestrator) Run(ctx context.Context) (*scan.Result, error) {
	if !o.state.CompareAndSwap(int32(StateNotStarted), int32(StateScanningCleanup)) {
		return nil, ErrAlreadyRan
	}

	if o.platformInfo == nil || o.platformInfo.HomeDir == "" {
		return nil, ErrNoHomeDir
	}

	start := time.Now()
	domains := make(map[scan.Domain][]scan.CleanupGroup, len(scan.Domains()))

	if o.config.Domains.Cleanup {
		cleanupGroups, err := o.scanCleanup(ctx)
		if err != nil {
			return nil, err
		}
		domains[scan.DomainCleanup] = cleanupGroups
	} else {
		domains[scan.DomainCleanup] = o.skipDomain(scan.DomainCleanup, "Scanning for junk")
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	o.state.Store(int32(StateScanningPerformance))

	if o.config.Domains.Performance {
		domains[scan.DomainPerformance] = o.scanPerformance(ctx)
	} else {
		domains[scan.DomainPerformance] = o.skipDomain(scan.DomainPerformance, "Checking performance")
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	o.state.Store(int32(StateScanningApplications))

	if o.config.Domains.Applications {
		domains[scan.DomainApplications] = o.scanApplications(ctx)
	} else {
		domains[scan.DomainApplications] = o.skipDomain(scan.DomainApplications, "Reviewing applications")
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	o.state.Store(int32(StateCompleted))
	o.emitter.Finish()

	return &scan.Result{
		Timestamp: start,
		Duration:  time.Since(start),
		Domains:   domains,
	}, nil
}

// skipDomain handles a domain disabled in config: no scanners run and
// no groups are produced, but the domain still reports full local
// progress so the weighted overall reaches 1.0.
func (o *Orchestrator) skipDomain(domain scan.Domain, title string) []scan.CleanupGroup {
	o.emitter.Emit(domain, 1.0, o.emitter.Counters(), title, "Disabled", "")
	return []scan.CleanupGroup{}
}

// categoryPresentation maps a category to its group and item title
var categoryPresentation = map[scan.Category]struct {
	groupID string
	title   string
}{
	scan.CategorySystemCache:  {GroupSystemJunk, "System caches"},
	scan.CategoryUserCache:    {GroupSystemJunk, "User caches"},
	scan.CategoryTemp:         {GroupSystemJunk, "Temporary files"},
	scan.CategoryBrowserCache: {GroupSystemJunk, "Browser caches"},
	scan.CategoryJunkFiles:    {GroupSystemJunk, "Leftover junk"},
	scan.CategoryLogs:         {GroupLogs, "Log files"},
	scan.CategoryTrash:        {GroupTrash, "Trash contents"},
	scan.CategoryDevJunk:      {GroupDevJunk, "Developer caches"},
}

// cleanupJobs builds the fixed category job list from the enabled
// categories
func (o *Orchestrator) cleanupJobs() []CategoryJob {
	enabled := []struct {
		category scan.Category
		on       bool
	}{
		{scan.CategorySystemCache, o.config.Categories.SystemCache},
		{scan.CategoryUserCache, o.config.Categories.UserCache},
		{scan.CategoryTemp, o.config.Categories.Temp},
		{scan.CategoryLogs, o.config.Categories.Logs},
		{scan.CategoryBrowserCache, o.config.Categories.BrowserCache},
		{scan.CategoryTrash, o.config.Categories.Trash},
		{scan.CategoryDevJunk, o.config.Categories.DevJunk},
	}

	jobs := make([]CategoryJob, 0, len(enabled))
	for _, e := range enabled {
		if !e.on {
			continue
		}
		category := e.category
		jobs = append(jobs, CategoryJob{
			Category: category,
			Run: func(ctx context.Context) (scan.CategoryJobResult, error) {
				return o.deps.Categories.Scan(ctx, category), nil
			},
		})
	}
	return jobs
}

// scanCleanup runs the cleanup/space domain: the bounded category
// runner, then the three extra scans concurrently, then item building
// through the shared ledger.
func (o *Orchestrator) scanCleanup(ctx context.Context) ([]scan.CleanupGroup, error) {
	jobs := o.cleanupJobs()

	var counters scan.LiveCounters

	// Completions arrive serially from the runner's collection loop
	results, err := o.runner.Run(ctx, jobs, func(result scan.CategoryJobResult, completed, total int, totalBytes int64) {
		counters.BytesFound = totalBytes
		counters.FlaggedCount += result.ItemCount
		local := categoryPhaseWeight * float64(completed) / float64(total)
		o.emitter.Emit(scan.DomainCleanup, local, counters,
			"Scanning for junk", result.Description, string(result.Category))
	})
	if err != nil {
		return nil, err
	}

	// Extra scans: few and independent, no shared ceiling
	var (
		mu        sync.Mutex
		extraDone int

		junkResult  scan.CategoryJobResult
		hiddenSpace scan.HiddenSpaceReport
		oldDownloads, recentDownloads scan.CategoryJobResult
	)

	markExtra := func(detail string, bytes int64, itemCount int) {
		mu.Lock()
		extraDone++
		counters.BytesFound += bytes
		counters.FlaggedCount += itemCount
		local := categoryPhaseWeight + extraPhaseWeight*float64(extraDone)/extraScanCount
		snapshot := counters
		mu.Unlock()
		o.emitter.Emit(scan.DomainCleanup, local, snapshot,
			"Scanning for junk", detail, "")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		junkResult = o.deps.Junk.ScanJunkFiles(gctx)
		markExtra("Leftover junk files", junkResult.TotalBytes, junkResult.ItemCount)
		return nil
	})
	g.Go(func() error {
		hiddenSpace = o.deps.Hidden.Scan(gctx, o.platformInfo.HiddenScanRoot, o.config.IncludeDotfiles)
		markExtra("Hidden space", hiddenSpace.TotalSize, len(hiddenSpace.Items))
		return nil
	})
	g.Go(func() error {
		oldDownloads, recentDownloads = o.deps.Downloads.ScanDownloadsByAge(gctx)
		markExtra("Downloads", oldDownloads.TotalBytes+recentDownloads.TotalBytes,
			oldDownloads.ItemCount+recentDownloads.ItemCount)
		return nil
	})
	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Build items in the fixed documented order; ledger claims happen
	// in this order, so earlier categories win overlapping paths.
	var items []scan.CleanupItem
	add := func(item scan.CleanupItem) {
		// Empty after dedup: every path lost to an earlier claim
		if item.Size > 0 {
			items = append(items, item)
		}
	}

	for _, category := range []scan.Category{
		scan.CategorySystemCache, scan.CategoryUserCache, scan.CategoryTemp,
		scan.CategoryLogs, scan.CategoryBrowserCache, scan.CategoryTrash,
		scan.CategoryDevJunk,
	} {
		result, ok := results[category]
		if !ok {
			continue
		}
		meta := categoryPresentation[category]
		add(o.builder.Build(scan.DomainCleanup, meta.groupID, meta.title,
			result.Description, scan.ActionDeletePaths, result))
	}

	meta := categoryPresentation[scan.CategoryJunkFiles]
	add(o.builder.Build(scan.DomainCleanup, meta.groupID, meta.title,
		junkResult.Description, scan.ActionDeletePaths, junkResult))

	// Downloads always need user review, regardless of age
	add(o.builder.Build(scan.DomainCleanup, GroupDownloads, "Old downloads",
		fmt.Sprintf("Untouched for %d days or more", o.config.DownloadsAgeDays),
		scan.ActionDeletePaths, oldDownloads))
	add(o.builder.Build(scan.DomainCleanup, GroupDownloads, "Recent downloads",
		recentDownloads.Description, scan.ActionDeletePaths, recentDownloads))

	for _, item := range o.buildHiddenItems(hiddenSpace) {
		add(item)
	}

	return composeGroups(cleanupGroupOrder, items), nil
}

// buildHiddenItems aggregates the hidden-space report per display
// category and claims each aggregate through the ledger. Hidden
// directories routinely overlap cache paths already claimed by the
// category scans, so dedup matters here most of all.
func (o *Orchestrator) buildHiddenItems(report scan.HiddenSpaceReport) []scan.CleanupItem {
	byCategory := make(map[string][]string)
	order := make([]string, 0)
	for _, item := range report.Items {
		if _, seen := byCategory[item.Category]; !seen {
			order = append(order, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item.Path)
	}

	items := make([]scan.CleanupItem, 0, len(order))
	for _, category := range order {
		result := scan.CategoryJobResult{
			Category:    scan.CategoryHiddenSpace,
			Description: "Hidden " + category,
			Paths:       byCategory[category],
			// Hidden space needs user review before deletion
			SafeToDelete: false,
		}
		items = append(items, o.builder.Build(scan.DomainCleanup, GroupHidden,
			category, "Hidden space", scan.ActionDeletePaths, result))
	}
	return items
}

// scanPerformance runs the performance domain: fixed maintenance
// actions and login items
func (o *Orchestrator) scanPerformance(ctx context.Context) []scan.CleanupGroup {
	var items []scan.CleanupItem

	for i, action := range maintenanceActions {
		if ctx.Err() != nil {
			return nil
		}
		// Zero-size action items are informational and always shown
		items = append(items, o.builder.Build(scan.DomainPerformance, GroupMaintenance,
			action.Title, action.Description, scan.ActionRunOptimization,
			scan.CategoryJobResult{SafeToDelete: true}))

		local := 0.4 * float64(i+1) / float64(len(maintenanceActions))
		o.emitter.Emit(scan.DomainPerformance, local, scan.LiveCounters{},
			"Checking performance", action.Title, "")
	}

	counters := o.emitter.Counters()
	for _, login := range o.deps.Login.Scan(ctx) {
		subtitle := "System launch item"
		if login.UserLevel {
			subtitle = "User launch agent"
		}
		result := scan.CategoryJobResult{
			Paths:        []string{login.Path},
			ItemCount:    1,
			SafeToDelete: login.UserLevel,
		}
		item := o.builder.Build(scan.DomainPerformance, GroupLoginItems,
			login.Label, subtitle, scan.ActionDeletePaths, result)
		if len(item.Paths) == 0 {
			continue
		}
		counters.FlaggedCount++
		items = append(items, item)
	}

	o.emitter.Emit(scan.DomainPerformance, 1.0, counters,
		"Checking performance", "Login items", "")

	return composeGroups(performanceGroupOrder, items)
}

// scanApplications runs the applications domain. Findings are wrapped
// as aggregate items and not reconciled against the ledger: apps are
// not expected to overlap cache paths.
func (o *Orchestrator) scanApplications(ctx context.Context) []scan.CleanupGroup {
	report := o.deps.Apps.Scan(ctx)

	counters := o.emitter.Counters()
	counters.AppsScanned = report.AppsScanned

	var items []scan.CleanupItem
	addAggregate := func(title, subtitle string, action scan.ItemAction, size int64, count int, paths []string, safe bool) {
		if count == 0 {
			return
		}
		counters.FlaggedCount++
		items = append(items, o.builder.BuildAggregate(scan.DomainApplications,
			GroupApplications, title, subtitle, action, size, count, paths, safe))
	}

	var unusedSize int64
	unusedPaths := make([]string, 0, len(report.UnusedApps))
	for _, app := range report.UnusedApps {
		unusedSize += app.Size
		unusedPaths = append(unusedPaths, app.Path)
	}
	addAggregate("Unused applications",
		fmt.Sprintf("Not opened in %d days", o.config.UnusedAppDays),
		scan.ActionDeletePaths, unusedSize, len(report.UnusedApps), unusedPaths, false)

	// For duplicates only the extra copies are reclaimable; keep the
	// largest copy of each group
	var dupSize int64
	var dupPaths []string
	dupCount := 0
	for _, group := range report.DuplicateAppGroups {
		largest := 0
		for i, app := range group.Apps {
			if app.Size > group.Apps[largest].Size {
				largest = i
			}
		}
		for i, app := range group.Apps {
			if i == largest {
				continue
			}
			dupSize += app.Size
			dupPaths = append(dupPaths, app.Path)
			dupCount++
		}
	}
	addAggregate("Duplicate applications", "Extra copies of installed apps",
		scan.ActionDeletePaths, dupSize, dupCount, dupPaths, false)

	var largeSize int64
	largePaths := make([]string, 0, len(report.LargeApps))
	for _, app := range report.LargeApps {
		largeSize += app.Size
		largePaths = append(largePaths, app.Path)
	}
	addAggregate("Large applications",
		fmt.Sprintf("Larger than %s", o.config.LargeAppMinSize),
		scan.ActionNone, largeSize, len(report.LargeApps), largePaths, false)

	var orphanSize int64
	orphanPaths := make([]string, 0, len(report.OrphanedFiles))
	for _, orphan := range report.OrphanedFiles {
		orphanSize += orphan.Size
		orphanPaths = append(orphanPaths, orphan.Path)
	}
	addAggregate("Orphaned app data", "Support files with no matching app",
		scan.ActionDeletePaths, orphanSize, len(report.OrphanedFiles), orphanPaths, true)

	o.emitter.Emit(scan.DomainApplications, 1.0, counters,
		"Reviewing applications", "", "")

	return composeGroups(applicationsGroupOrder, items)
}
