// Package blob keeps downloaded artifacts in memory behind temporary "blob:" URLs,
// so generated objects can reference the file they were built from.
package blob

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Scheme prefixes every URL created by a Store.
const Scheme = "blob:"

// Blob is an in-memory artifact.
type Blob struct {
	Data        []byte
	ContentType string
}

// Store maps blob URLs to their data. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

func NewStore() *Store {
	return &Store{blobs: make(map[string]Blob)}
}

// Create stores data and returns a new URL referencing it. data is not copied.
func (s *Store) Create(data []byte, contentType string) string {
	url := Scheme + uuid.NewString()
	s.mu.Lock()
	s.blobs[url] = Blob{Data: data, ContentType: contentType}
	s.mu.Unlock()
	return url
}

// Get returns the blob behind url.
func (s *Store) Get(url string) (Blob, error) {
	s.mu.RLock()
	b, ok := s.blobs[url]
	s.mu.RUnlock()
	if !ok {
		return Blob{}, fmt.Errorf("blob: unknown url %q", url)
	}
	return b, nil
}

// Revoke releases url. Unknown URLs are ignored.
func (s *Store) Revoke(url string) {
	s.mu.Lock()
	delete(s.blobs, url)
	s.mu.Unlock()
}

// Len returns the number of live blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// IsBlobURL reports whether url was made by a Store.
func IsBlobURL(url string) bool {
	return strings.HasPrefix(url, Scheme)
}
