package imageurl

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestNextDealsEachURLOncePerCycle(t *testing.T) {
	urls := []string{"a", "b", "c", "d", "e"}
	s := New(urls)

	for cycle := 0; cycle < 3; cycle++ {
		seen := map[string]bool{}
		for i := 0; i < len(urls); i++ {
			u, ok := s.Next()
			if !ok {
				t.Fatalf("cycle %d: Next reported empty selector", cycle)
			}
			if seen[u] {
				t.Fatalf("cycle %d: %q dealt twice before exhaustion", cycle, u)
			}
			seen[u] = true
		}
		if len(seen) != len(urls) {
			t.Fatalf("cycle %d: dealt %d distinct urls, want %d", cycle, len(seen), len(urls))
		}
	}
}

func TestNewDeduplicates(t *testing.T) {
	s := New([]string{"x", "x", " x ", "y", ""})
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		u, ok := s.Next()
		if !ok {
			t.Fatalf("selector empty after %d pops", i)
		}
		seen[u] = true
	}
	if !seen["x"] || !seen["y"] {
		t.Fatalf("expected exactly {x, y}, got %v", seen)
	}
}

func TestEmptySelector(t *testing.T) {
	s := New(nil)
	if _, ok := s.Next(); ok {
		t.Fatalf("empty selector returned a url")
	}
}

func TestNextConcurrent(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, ok := s.Next(); !ok {
					t.Errorf("Next returned not-ok on a non-empty selector")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadSplitsOnWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://img.example/1.jpg https://img.example/2.jpg\n\n  https://img.example/3.jpg\thttps://img.example/1.jpg\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s := Load(path)
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		u, ok := s.Next()
		if !ok {
			t.Fatalf("selector exhausted early")
		}
		seen[u] = true
	}
	if len(seen) != 3 {
		t.Fatalf("loaded %d distinct urls, want 3 (dedup + whitespace split)", len(seen))
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if _, ok := s.Next(); ok {
		t.Fatalf("missing file should produce an empty selector")
	}
}
