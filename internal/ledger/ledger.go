// Package ledger tracks the set of filesystem paths already claimed by
// an accepted cleanup item, so no byte of disk space is counted or
// deleted under more than one item.
package ledger

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Ledger holds the claimed canonical root paths for one scan run.
// The claimed set is append-only and never shrinks. Safe for concurrent
// callers.
type Ledger struct {
	mu      sync.Mutex
	claimed []string
	homeDir string
}

// New creates an empty ledger for a single run
func New() *Ledger {
	home, _ := os.UserHomeDir()
	return &Ledger{homeDir: home}
}

// NewWithHome creates a ledger with an explicit home directory for
// tilde expansion
func NewWithHome(home string) *Ledger {
	return &Ledger{homeDir: home}
}

// Claim canonicalizes the candidates and accepts those that do not
// overlap any previously claimed root. A candidate is rejected when it
// equals, is a descendant of, or is an ancestor of any claimed root.
// Within a batch, shorter (parent) paths are considered first, so a
// parent wins over its children submitted in the same batch. Across
// batches, first claim wins. The accepted subset preserves the relative
// order of the original candidate list.
func (l *Ledger) Claim(candidates []string) []string {
	type entry struct {
		canonical string
		index     int
	}

	entries := make([]entry, 0, len(candidates))
	for i, candidate := range candidates {
		canonical, ok := l.canonicalize(candidate)
		if !ok {
			// Unresolvable paths are skipped: not counted, not claimed
			continue
		}
		entries = append(entries, entry{canonical: canonical, index: i})
	}

	// Parents before children within the batch
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].canonical) < len(entries[j].canonical)
	})

	l.mu.Lock()
	defer l.mu.Unlock()

	acceptedIdx := make(map[int]string, len(entries))
	for _, e := range entries {
		if l.overlapsLocked(e.canonical) {
			continue
		}
		l.claimed = append(l.claimed, e.canonical)
		acceptedIdx[e.index] = e.canonical
	}

	// Re-emit in original candidate order
	accepted := make([]string, 0, len(acceptedIdx))
	for i := range candidates {
		if canonical, ok := acceptedIdx[i]; ok {
			accepted = append(accepted, canonical)
		}
	}
	return accepted
}

// Claimed returns a snapshot of all claimed roots
func (l *Ledger) Claimed() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.claimed))
	copy(out, l.claimed)
	return out
}

// overlapsLocked reports whether candidate is equal to, a descendant
// of, or an ancestor of any claimed root. Caller holds l.mu.
func (l *Ledger) overlapsLocked(candidate string) bool {
	for _, root := range l.claimed {
		if candidate == root {
			return true
		}
		if strings.HasPrefix(candidate, root+string(filepath.Separator)) {
			return true
		}
		if strings.HasPrefix(root, candidate+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// canonicalize expands home-relative notation, resolves symlinks and
// strips trailing separators so equivalent paths compare equal. Returns
// false when the path cannot be resolved (broken symlink, permission
// denied).
func (l *Ledger) canonicalize(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	if path == "~" {
		path = l.homeDir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(l.homeDir, path[2:])
	}

	path = filepath.Clean(path)

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Nonexistent paths still canonicalize by their cleaned form
			resolved = path
		} else {
			return "", false
		}
	}

	resolved = strings.TrimRight(resolved, string(filepath.Separator))
	if resolved == "" {
		resolved = string(filepath.Separator)
	}
	return resolved, true
}
