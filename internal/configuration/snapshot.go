package configuration

import (
	"context"
	"sync/atomic"
)

// Snapshot is an immutable view of the whole configuration table. Readers
// hold whatever snapshot they dereferenced; a reload never mutates an
// existing snapshot.
type Snapshot struct {
	values map[string]string
}

// Get returns the value for key, or fallback when the key is absent.
func (s *Snapshot) Get(key, fallback string) string {
	if value, ok := s.values[key]; ok {
		return value
	}
	return fallback
}

func (s *Snapshot) WebsiteBaseURL() string {
	return s.Get("website.url", "http://localhost:8080")
}

func (s *Snapshot) EmailSenderAddress() string {
	return s.Get("email.sender.address", "noreply@localhost")
}

// Store holds the process-wide current snapshot behind an atomically swapped
// pointer. Reloads happen explicitly, never implicitly: the configuration
// edit workflow reloads after a confirmed save.
type Store struct {
	repo    *Repository
	current atomic.Pointer[Snapshot]
}

func NewStore(repo *Repository) *Store {
	store := &Store{repo: repo}
	store.current.Store(&Snapshot{values: map[string]string{}})
	return store
}

// Reload builds a fresh snapshot from the database and swaps it in as a
// single atomic operation. No partial update is ever visible.
func (s *Store) Reload(ctx context.Context) error {
	values, err := s.repo.LoadAll()
	if err != nil {
		return err
	}
	s.current.Store(&Snapshot{values: values})
	return nil
}

// Current returns the snapshot as of the last reload; never nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}
