package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/fenilsonani/smartcare/internal/config"
	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/sizer"
	"github.com/fenilsonani/smartcare/internal/testutil"
)

// Fake collaborators returning canned findings

type fakeCategories struct {
	results map[scan.Category]scan.CategoryJobResult
}

func (f *fakeCategories) Scan(ctx context.Context, category scan.Category) scan.CategoryJobResult {
	result, ok := f.results[category]
	if !ok {
		return scan.CategoryJobResult{Category: category}
	}
	return result
}

type fakeJunk struct{ result scan.CategoryJobResult }

func (f *fakeJunk) ScanJunkFiles(ctx context.Context) scan.CategoryJobResult { return f.result }

type fakeDownloads struct{ old, recent scan.CategoryJobResult }

func (f *fakeDownloads) ScanDownloadsByAge(ctx context.Context) (scan.CategoryJobResult, scan.CategoryJobResult) {
	return f.old, f.recent
}

type fakeHidden struct{ report scan.HiddenSpaceReport }

func (f *fakeHidden) Scan(ctx context.Context, root string, includeDotfiles bool) scan.HiddenSpaceReport {
	return f.report
}

type fakeApps struct{ report scan.AppIssueReport }

func (f *fakeApps) Scan(ctx context.Context) scan.AppIssueReport { return f.report }

type fakeLogin struct{ items []scan.LoginItem }

func (f *fakeLogin) Scan(ctx context.Context) []scan.LoginItem { return f.items }

func emptyDeps() Deps {
	return Deps{
		Categories: &fakeCategories{},
		Junk:       &fakeJunk{},
		Downloads:  &fakeDownloads{},
		Hidden:     &fakeHidden{},
		Apps:       &fakeApps{},
		Login:      &fakeLogin{},
	}
}

func TestRunProducesGroupedResult(t *testing.T) {
	f := testutil.NewFixture(t)

	cachePath := f.CreateFile("cache/ChromeApp/data.bin", 2048)
	_ = cachePath
	trashPath := f.CreateFile("trash/old.zip", 4096)
	agentPath := f.CreateFile("launchagents-user/com.example.helper.plist", 256)
	sysAgentPath := f.CreateFile("launchagents-system/com.vendor.daemon.plist", 128)
	appPath := f.CreateFile("apps/Stale.app/Contents/MacOS/stale", 512)
	_ = appPath

	deps := Deps{
		Categories: &fakeCategories{results: map[scan.Category]scan.CategoryJobResult{
			scan.CategoryUserCache: {
				Category:     scan.CategoryUserCache,
				Description:  "User cache files",
				Paths:        []string{f.UserCacheDir + "/ChromeApp"},
				TotalBytes:   2048,
				ItemCount:    1,
				SafeToDelete: true,
			},
			scan.CategoryTrash: {
				Category:     scan.CategoryTrash,
				Description:  "Trash contents",
				Paths:        []string{trashPath},
				TotalBytes:   4096,
				ItemCount:    1,
				SafeToDelete: true,
			},
		}},
		Junk:      &fakeJunk{},
		Downloads: &fakeDownloads{},
		Hidden:    &fakeHidden{},
		Apps: &fakeApps{report: scan.AppIssueReport{
			UnusedApps:  []scan.AppInfo{{Name: "Stale", Path: f.AppsDir + "/Stale.app", Size: 512}},
			AppsScanned: 12,
		}},
		Login: &fakeLogin{items: []scan.LoginItem{
			{Label: "com.example.helper", Path: agentPath, Size: 256, UserLevel: true},
			{Label: "com.vendor.daemon", Path: sysAgentPath, Size: 128, UserLevel: false},
		}},
	}

	var updates []scan.ProgressUpdate
	o := New(config.GetDefault(), f.PlatformInfo(), deps, sizer.New(), func(u scan.ProgressUpdate) {
		updates = append(updates, u)
	})

	result, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if o.State() != StateCompleted {
		t.Errorf("state = %s, want completed", o.State())
	}

	// Cleanup domain: System Junk (user cache) then Trash, fixed order
	cleanup := result.Domains[scan.DomainCleanup]
	if len(cleanup) != 2 {
		t.Fatalf("cleanup groups = %d, want 2", len(cleanup))
	}
	if cleanup[0].ID != GroupSystemJunk || cleanup[1].ID != GroupTrash {
		t.Errorf("group order = %s, %s; want system_junk, trash", cleanup[0].ID, cleanup[1].ID)
	}
	if got := cleanup[0].Items[0].Size; got != 2048 {
		t.Errorf("user cache item size = %d, want 2048", got)
	}

	// Performance domain: maintenance actions plus both login items
	perf := result.Domains[scan.DomainPerformance]
	if len(perf) != 2 {
		t.Fatalf("performance groups = %d, want 2", len(perf))
	}
	if len(perf[0].Items) != len(maintenanceActions) {
		t.Errorf("maintenance items = %d, want %d", len(perf[0].Items), len(maintenanceActions))
	}
	for _, item := range perf[0].Items {
		if item.Action != scan.ActionRunOptimization || item.Size != 0 {
			t.Errorf("maintenance item %q should be a zero-size action", item.Title)
		}
	}
	logins := perf[1].Items
	if len(logins) != 2 {
		t.Fatalf("login items = %d, want 2", len(logins))
	}
	for _, item := range logins {
		userLevel := item.Title == "com.example.helper"
		if item.SafeToRun != userLevel {
			t.Errorf("login item %q SafeToRun = %v, want %v", item.Title, item.SafeToRun, userLevel)
		}
	}

	// Applications domain: one aggregate unused-apps item
	apps := result.Domains[scan.DomainApplications]
	if len(apps) != 1 || len(apps[0].Items) != 1 {
		t.Fatalf("applications groups = %+v, want one group with one item", apps)
	}
	if apps[0].Items[0].Size != 512 {
		t.Errorf("unused apps size = %d, want scanner-reported 512", apps[0].Items[0].Size)
	}

	// Progress: monotonic, counters only grow, final update is 1.0
	if len(updates) == 0 {
		t.Fatal("no progress updates delivered")
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Overall < updates[i-1].Overall {
			t.Errorf("overall regressed at %d: %f -> %f", i, updates[i-1].Overall, updates[i].Overall)
		}
		if updates[i].Counters.BytesFound < updates[i-1].Counters.BytesFound {
			t.Errorf("BytesFound regressed at %d", i)
		}
	}
	final := updates[len(updates)-1]
	if final.Overall != 1.0 {
		t.Errorf("final overall = %f, want 1.0", final.Overall)
	}
	if final.Counters.AppsScanned != 12 {
		t.Errorf("final AppsScanned = %d, want 12", final.Counters.AppsScanned)
	}
}

func TestRunDeduplicatesAcrossScanners(t *testing.T) {
	f := testutil.NewFixture(t)

	// The cache scanner claims a specific app cache; the hidden-space
	// scanner later reports an ancestor of it
	f.CreateFile("cache/App/data.bin", 5*1024)

	deps := emptyDeps()
	deps.Categories = &fakeCategories{results: map[scan.Category]scan.CategoryJobResult{
		scan.CategoryUserCache: {
			Category:     scan.CategoryUserCache,
			Paths:        []string{f.UserCacheDir + "/App"},
			SafeToDelete: true,
		},
	}}
	deps.Hidden = &fakeHidden{report: scan.HiddenSpaceReport{
		Items:     []scan.HiddenItem{{Path: f.UserCacheDir, Size: 5 * 1024, Category: "Caches"}},
		TotalSize: 5 * 1024,
	}}

	o := New(config.GetDefault(), f.PlatformInfo(), deps, sizer.New(), nil)
	result, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var total int64
	hiddenGroupPresent := false
	for _, group := range result.Domains[scan.DomainCleanup] {
		if group.ID == GroupHidden {
			hiddenGroupPresent = true
		}
		total += group.TotalSize()
	}
	if hiddenGroupPresent {
		t.Error("hidden group should vanish once its only path lost the claim")
	}
	if total != 5*1024 {
		t.Errorf("total size = %d, want 5120 counted exactly once", total)
	}
}

func TestRunSecondCallFails(t *testing.T) {
	f := testutil.NewFixture(t)
	o := New(config.GetDefault(), f.PlatformInfo(), emptyDeps(), sizer.New(), nil)

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := o.Run(context.Background()); !errors.Is(err, ErrAlreadyRan) {
		t.Errorf("second Run error = %v, want ErrAlreadyRan", err)
	}
}

func TestRunFailsWithoutHomeDir(t *testing.T) {
	f := testutil.NewFixture(t)
	info := f.PlatformInfo()
	info.HomeDir = ""

	o := New(config.GetDefault(), info, emptyDeps(), sizer.New(), nil)
	if _, err := o.Run(context.Background()); !errors.Is(err, ErrNoHomeDir) {
		t.Errorf("Run error = %v, want ErrNoHomeDir", err)
	}
}

func TestRunEmptyScannersYieldEmptyGroupLists(t *testing.T) {
	f := testutil.NewFixture(t)
	o := New(config.GetDefault(), f.PlatformInfo(), emptyDeps(), sizer.New(), nil)

	result, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Domains[scan.DomainCleanup]) != 0 {
		t.Errorf("cleanup groups = %v, want none", result.Domains[scan.DomainCleanup])
	}
	if len(result.Domains[scan.DomainApplications]) != 0 {
		t.Errorf("applications groups = %v, want none", result.Domains[scan.DomainApplications])
	}
	// Maintenance actions always exist, so performance is never empty
	if len(result.Domains[scan.DomainPerformance]) == 0 {
		t.Error("performance should still carry maintenance actions")
	}
}

func TestRunSkipsDisabledDomains(t *testing.T) {
	f := testutil.NewFixture(t)

	cfg := config.GetDefault()
	cfg.Domains.Performance = false
	cfg.Domains.Applications = false

	deps := emptyDeps()
	deps.Apps = &fakeApps{report: scan.AppIssueReport{
		UnusedApps:  []scan.AppInfo{{Name: "Stale", Path: f.AppsDir + "/Stale.app", Size: 512}},
		AppsScanned: 3,
	}}

	var updates []scan.ProgressUpdate
	o := New(cfg, f.PlatformInfo(), deps, sizer.New(), func(u scan.ProgressUpdate) {
		updates = append(updates, u)
	})

	result, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Even the always-present maintenance group must not appear
	if got := result.Domains[scan.DomainPerformance]; len(got) != 0 {
		t.Errorf("performance disabled but produced %d groups (%q)", len(got), got[0].Title)
	}
	if got := result.Domains[scan.DomainApplications]; len(got) != 0 {
		t.Errorf("applications disabled but produced %d groups", len(got))
	}

	if len(updates) == 0 {
		t.Fatal("no progress updates delivered")
	}
	if final := updates[len(updates)-1]; final.Overall != 1.0 {
		t.Errorf("final overall = %f, want 1.0 with disabled domains", final.Overall)
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Overall < updates[i-1].Overall {
			t.Errorf("overall regressed at %d: %f -> %f", i, updates[i-1].Overall, updates[i].Overall)
		}
	}
}

func TestRunCancelledContextProducesNoResult(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(config.GetDefault(), f.PlatformInfo(), emptyDeps(), sizer.New(), nil)
	result, err := o.Run(ctx)
	if err == nil {
		t.Fatal("cancelled run should fail")
	}
	if result != nil {
		t.Error("cancelled run must discard partial results")
	}
}
