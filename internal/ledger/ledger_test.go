package ledger

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func TestClaimAcceptsDisjointPaths(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	accepted := l.Claim([]string{
		"/Users/testuser/Library/Caches/AppA",
		"/Users/testuser/Library/Logs/AppB",
		"/tmp/scratch",
	})

	want := []string{
		"/Users/testuser/Library/Caches/AppA",
		"/Users/testuser/Library/Logs/AppB",
		"/tmp/scratch",
	}
	if !reflect.DeepEqual(accepted, want) {
		t.Errorf("Claim() = %v, want %v", accepted, want)
	}
}

func TestClaimRejectsDescendantOfClaimedRoot(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	l.Claim([]string{"/Users/testuser/Library/Caches"})
	accepted := l.Claim([]string{"/Users/testuser/Library/Caches/App"})

	if len(accepted) != 0 {
		t.Errorf("descendant of claimed root should be rejected, got %v", accepted)
	}
}

func TestClaimRejectsAncestorOfClaimedRoot(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	l.Claim([]string{"/Users/testuser/Library/Caches/App"})
	accepted := l.Claim([]string{"/Users/testuser/Library/Caches"})

	if len(accepted) != 0 {
		t.Errorf("ancestor of claimed root should be rejected, got %v", accepted)
	}
}

func TestClaimParentWinsWithinBatch(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	// Child listed first, but the shorter parent is considered first
	accepted := l.Claim([]string{
		"/Users/testuser/Library/Caches/App",
		"/Users/testuser/Library/Caches",
	})

	want := []string{"/Users/testuser/Library/Caches"}
	if !reflect.DeepEqual(accepted, want) {
		t.Errorf("Claim() = %v, want %v", accepted, want)
	}
}

func TestClaimIdempotence(t *testing.T) {
	paths := []string{"/var/tmp/a", "/var/tmp/b"}

	l := NewWithHome("/Users/testuser")
	first := l.Claim(paths)
	second := l.Claim(paths)

	if len(first) != 2 {
		t.Fatalf("first Claim accepted %d paths, want 2", len(first))
	}
	if len(second) != 0 {
		t.Errorf("second Claim of same paths should accept nothing, got %v", second)
	}
}

func TestClaimFirstClaimWinsAcrossBatches(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	// An earlier scanner claimed a specific directory; a later scanner
	// reporting its parent is silently dropped.
	first := l.Claim([]string{"/Users/testuser/Library/Caches/App"})
	second := l.Claim([]string{"/Users/testuser/Library/Caches"})

	if len(first) != 1 {
		t.Fatalf("first batch should be accepted, got %v", first)
	}
	if len(second) != 0 {
		t.Errorf("later overlapping batch should lose, got %v", second)
	}

	claimed := l.Claimed()
	if len(claimed) != 1 || claimed[0] != "/Users/testuser/Library/Caches/App" {
		t.Errorf("claimed roots = %v, want the first claim only", claimed)
	}
}

func TestClaimPreservesCandidateOrder(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	accepted := l.Claim([]string{
		"/var/log/system.log",
		"/tmp/a",
		"/var/log/other.log",
	})

	want := []string{"/var/log/system.log", "/tmp/a", "/var/log/other.log"}
	if !reflect.DeepEqual(accepted, want) {
		t.Errorf("Claim() = %v, want %v", accepted, want)
	}
}

func TestClaimExpandsTilde(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	l.Claim([]string{"~/Library/Caches"})
	accepted := l.Claim([]string{"/Users/testuser/Library/Caches"})

	if len(accepted) != 0 {
		t.Errorf("tilde and absolute notation should claim the same root, got %v", accepted)
	}
}

func TestClaimStripsTrailingSeparator(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	first := l.Claim([]string{"/tmp/cache/"})
	if len(first) != 1 || first[0] != "/tmp/cache" {
		t.Fatalf("Claim() = %v, want [/tmp/cache]", first)
	}
	second := l.Claim([]string{"/tmp/cache"})
	if len(second) != 0 {
		t.Errorf("same root with trailing separator should be rejected, got %v", second)
	}
}

func TestClaimSkipsEmptyPath(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	accepted := l.Claim([]string{"", "/tmp/a"})
	if len(accepted) != 1 || accepted[0] != "/tmp/a" {
		t.Errorf("Claim() = %v, want [/tmp/a]", accepted)
	}
}

func TestClaimResolvesSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "alias")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	l := New()
	first := l.Claim([]string{link})
	if len(first) != 1 {
		t.Fatalf("symlinked root should be accepted, got %v", first)
	}
	second := l.Claim([]string{target})
	if len(second) != 0 {
		t.Errorf("symlink target should resolve to the same claim, got %v", second)
	}
}

func TestClaimConcurrentCallersNeverOverlap(t *testing.T) {
	l := NewWithHome("/Users/testuser")

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = l.Claim([]string{"/var/tmp/shared", "/var/tmp/shared/nested"})
		}(i)
	}
	wg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	if total != 1 {
		t.Errorf("exactly one claim should win across concurrent callers, got %d", total)
	}
}
