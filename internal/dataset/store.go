package dataset

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Store holds the current Index and replaces it wholesale on reload.
// Requests that already took a snapshot keep using it.
type Store struct {
	loader *Loader
	cur    atomic.Pointer[Index]
	group  singleflight.Group
}

// NewStore loads every generation once and returns a store serving it.
func NewStore(loader *Loader) (*Store, error) {
	idx, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	s := &Store{loader: loader}
	s.cur.Store(idx)
	return s, nil
}

// Index returns the current snapshot.
func (s *Store) Index() *Index {
	return s.cur.Load()
}

// Reload re-reads all set files. Concurrent calls share one load. On error
// the previous snapshot stays in place.
func (s *Store) Reload() (*Index, error) {
	v, err, _ := s.group.Do("reload", func() (interface{}, error) {
		idx, err := s.loader.LoadAll()
		if err != nil {
			return nil, err
		}
		s.cur.Store(idx)
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Files lists the files backing the store, for watchers.
func (s *Store) Files() []string {
	return s.loader.Files()
}
