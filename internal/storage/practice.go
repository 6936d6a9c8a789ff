package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
)

// PracticeEntry is the per-chat practice state kept in memory.
type PracticeEntry struct {
	Session    *practice.Session // engine state
	Focus      int               // question index the next typed answer goes to
	MessageID  int               // last screen message, 0 if none
	LastActive time.Time         // last time the entry was touched
}

// PracticeStorage provides in-memory storage for practice sessions by chat ID.
type PracticeStorage struct {
	mu         sync.Mutex
	entries    map[int64]*PracticeEntry
	newSession func() *practice.Session
	now        func() time.Time
}

// NewPracticeStorage creates a new PracticeStorage. newSession is used to
// create a session the first time a chat is seen.
func NewPracticeStorage(newSession func() *practice.Session) *PracticeStorage {
	return &PracticeStorage{
		entries:    make(map[int64]*PracticeEntry),
		newSession: newSession,
		now:        time.Now,
	}
}

// Update runs fn on the chat's entry, creating it if needed.
// fn runs under the storage lock and must not call back into the storage.
func (s *PracticeStorage) Update(chatID int64, fn func(e *PracticeEntry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[chatID]
	if !ok {
		e = &PracticeEntry{Session: s.newSession()}
		s.entries[chatID] = e
	}
	e.LastActive = s.now()

	return fn(e)
}

// Read runs fn on an existing entry. It reports false if the chat has none.
func (s *PracticeStorage) Read(chatID int64, fn func(e *PracticeEntry)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[chatID]
	if !ok {
		return false
	}
	fn(e)
	return true
}

// Delete removes the chat's entry.
func (s *PracticeStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chatID)
}

// EvictIdle removes entries not touched within ttl and returns how many were removed.
func (s *PracticeStorage) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for chatID, e := range s.entries {
		if e.LastActive.Before(cutoff) {
			delete(s.entries, chatID)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries.
func (s *PracticeStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
