// Package imageurl hands out image URLs from a shuffled bag so newly
// created rooms and hotels get varied cover images.  Each URL is dealt
// once per cycle; when the bag empties it is refilled with a fresh
// random permutation of the full list.
package imageurl

import (
	"bufio"
	"math/rand"
	"os"
	"strings"
	"sync"
)

// Selector is safe for concurrent use: a single mutex guards refill+pop.
type Selector struct {
	mu   sync.Mutex
	all  []string
	bag  []string
	rand *rand.Rand
}

// New builds a Selector over the given URLs.  Duplicates are removed
// preserving first-seen order; the order only matters for determinism
// of the de-dup step, the bag itself is shuffled.
func New(urls []string) *Selector {
	seen := make(map[string]struct{}, len(urls))
	all := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		all = append(all, u)
	}
	s := &Selector{
		all:  all,
		rand: rand.New(rand.NewSource(int64(rand.Uint64()))),
	}
	s.refill()
	return s
}

// Load reads URLs from a text file, one or more per line separated by
// any whitespace.  A missing or unreadable file yields an empty
// selector rather than an error so the service keeps running without
// image assignment.
func Load(path string) *Selector {
	f, err := os.Open(path)
	if err != nil {
		return New(nil)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		urls = append(urls, strings.Fields(sc.Text())...)
	}
	return New(urls)
}

// Next pops one URL from the bag, refilling with a fresh permutation
// when exhausted.  ok is false only when the selector holds no URLs at
// all.
func (s *Selector) Next() (url string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.all) == 0 {
		return "", false
	}
	if len(s.bag) == 0 {
		s.refill()
	}
	url = s.bag[len(s.bag)-1]
	s.bag = s.bag[:len(s.bag)-1]
	return url, true
}

func (s *Selector) refill() {
	s.bag = append(s.bag[:0], s.all...)
	s.rand.Shuffle(len(s.bag), func(i, j int) {
		s.bag[i], s.bag[j] = s.bag[j], s.bag[i]
	})
}
