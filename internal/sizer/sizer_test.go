package sizer

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSizeFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "file.bin")
	writeFile(t, path, 4096)

	r := New()
	if got := r.Size(path); got != 4096 {
		t.Errorf("Size(file) = %d, want 4096", got)
	}
}

func TestSizeDirectoryRecursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 1000)
	writeFile(t, filepath.Join(root, "sub", "b.bin"), 2000)
	writeFile(t, filepath.Join(root, "sub", "deep", "c.bin"), 3000)

	r := New()
	if got := r.Size(root); got != 6000 {
		t.Errorf("Size(dir) = %d, want 6000", got)
	}
}

func TestSizeNonexistentPath(t *testing.T) {
	r := New()
	if got := r.Size("/no/such/path/exists"); got != 0 {
		t.Errorf("Size(nonexistent) = %d, want 0", got)
	}
}

func TestSizeDirectoryIsCached(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 512)

	r := New()
	first := r.Size(root)

	// Grow the directory after the first lookup; the cached total is
	// returned for the remainder of the run.
	writeFile(t, filepath.Join(root, "b.bin"), 512)
	second := r.Size(root)

	if first != 512 || second != 512 {
		t.Errorf("cached Size = (%d, %d), want (512, 512)", first, second)
	}
}

func TestSizeAll(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.bin")
	b := filepath.Join(root, "b.bin")
	writeFile(t, a, 100)
	writeFile(t, b, 200)

	r := New()
	if got := r.SizeAll([]string{a, b, "/missing"}); got != 300 {
		t.Errorf("SizeAll = %d, want 300", got)
	}
}

func TestSizeConcurrentFirstWriters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 777)

	r := New()
	var wg sync.WaitGroup
	got := make([]int64, 16)
	for i := range got {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got[n] = r.Size(root)
		}(i)
	}
	wg.Wait()

	for i, g := range got {
		if g != 777 {
			t.Errorf("goroutine %d saw %d, want 777", i, g)
		}
	}
}
