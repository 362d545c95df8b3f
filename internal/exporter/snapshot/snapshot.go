// Package snapshot keeps the latest records of every source an exporter
// watches, so that one output file can hold several sources.
package snapshot

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/samber/lo"
	"proxy-normalizer/internal/domain"
)

type Set struct {
	mu       sync.Mutex
	bySource map[domain.SourceName][]domain.Proxy
}

func New() *Set {
	return &Set{bySource: make(map[domain.SourceName][]domain.Proxy)}
}

// Put replaces the records of source and returns the records of all sources,
// ordered by source name.
func (s *Set) Put(source domain.SourceName, proxies []domain.Proxy) []domain.Proxy {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySource[source] = proxies

	sources := lo.Keys(s.bySource)
	slices.Sort(sources)

	var all []domain.Proxy
	for _, name := range sources {
		all = append(all, s.bySource[name]...)
	}
	return all
}

// WriteFile writes data next to path and renames it into place.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
