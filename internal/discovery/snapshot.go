package discovery

import "time"

// Snapshot is the immutable result of one scan. Pages are ordered active-first and keep
// glob order within each partition.
type Snapshot struct {
	ID        string
	ScannedAt time.Time

	pages []Page
	index map[string]int
}

func newSnapshot(id string, at time.Time, pages []Page) *Snapshot {
	s := &Snapshot{ID: id, ScannedAt: at, pages: pages, index: make(map[string]int, len(pages))}
	for i, p := range pages {
		s.index[p.Key] = i
	}
	return s
}

// Empty returns a snapshot with no pages.
func Empty() *Snapshot {
	return newSnapshot("", time.Time{}, nil)
}

// Len returns the number of pages.
func (s *Snapshot) Len() int { return len(s.pages) }

// Get returns the page registered under the absolute entry path key.
func (s *Snapshot) Get(key string) (Page, bool) {
	i, ok := s.index[key]
	if !ok {
		return Page{}, false
	}
	return s.pages[i].clone(), true
}

// Pages returns a copy of all pages in registry order.
func (s *Snapshot) Pages() []Page {
	out := make([]Page, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.clone()
	}
	return out
}

// Active returns a copy of the active pages in registry order.
func (s *Snapshot) Active() []Page {
	out := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		if p.Active {
			out = append(out, p.clone())
		}
	}
	return out
}

// ActiveCount returns the number of active pages.
func (s *Snapshot) ActiveCount() int {
	n := 0
	for _, p := range s.pages {
		if p.Active {
			n++
		}
	}
	return n
}

// Keys returns the absolute entry paths in registry order.
func (s *Snapshot) Keys() []string {
	out := make([]string, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.Key
	}
	return out
}
