package catalog

import (
	"context"
	"sync"
)

// State is the load state of a Store
type State int

const (
	NotLoaded State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "not loaded"
}

// Store holds the catalog for the life of the process. Load runs once; a
// failed load is terminal and is not retried. Readers never wait on a load
// in progress: they get ErrNotLoaded until it completes.
type Store struct {
	once sync.Once

	mu    sync.RWMutex
	state State
	cat   *Catalog
	err   error
}

// Load fetches and parses source. Concurrent callers wait for the single
// load; calling Load after it has completed returns the first outcome.
func (s *Store) Load(ctx context.Context, source string) error {
	s.once.Do(func() {
		s.mu.Lock()
		if s.state != NotLoaded {
			s.mu.Unlock()
			return
		}
		s.state = Loading
		s.mu.Unlock()

		cat, err := LoadContext(ctx, source)

		s.mu.Lock()
		defer s.mu.Unlock()
		// Set may have installed a catalog meanwhile
		if s.state != Loading {
			return
		}
		if err != nil {
			s.state = Failed
			s.err = err
			return
		}
		s.state = Loaded
		s.cat = cat
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Set installs an already parsed catalog
func (s *Store) Set(c *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Loaded
	s.cat = c
	s.err = nil
}

// State reports whether the catalog has been loaded
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Catalog returns the loaded catalog, ErrNotLoaded before or during Load, or
// the load error after a failed Load.
func (s *Store) Catalog() (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case Loaded:
		return s.cat, nil
	case Failed:
		return nil, s.err
	}
	return nil, ErrNotLoaded
}
