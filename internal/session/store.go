package session

import (
	"fmt"

	"github.com/verte-zerg/tomato/internal/codec"
	"github.com/verte-zerg/tomato/internal/logging"
	"github.com/verte-zerg/tomato/internal/storage"
)

// Store persists a List through a storage handle.
type Store struct {
	storage *storage.Storage
}

// NewStore returns a Store backed by st.
func NewStore(st *storage.Storage) *Store {
	return &Store{storage: st}
}

// Load returns the persisted sessions. A missing or unreadable file yields an
// empty list: lost history is recoverable, so it is not treated as fatal.
func (s *Store) Load() List {
	log := logging.Component("session")

	contents, err := s.storage.Read()
	if err != nil {
		log.Debug().Err(err).Msg("no session history, starting empty")
		return NewList(nil)
	}
	list, ok := codec.Decode[List](contents)
	if !ok {
		log.Warn().Msg("session history does not decode, starting empty")
		return NewList(nil)
	}
	return NewList(list.Sessions)
}

// AppendAndPersist appends session to list and rewrites the whole file.
func (s *Store) AppendAndPersist(list *List, session Session) error {
	list.Append(session)
	text, err := codec.Encode(*list)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := s.storage.Write(text); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// Log couples the in-memory list with the store that persists it.
type Log struct {
	store *Store
	list  List
}

// OpenLog loads the persisted list from store.
func OpenLog(store *Store) *Log {
	return &Log{store: store, list: store.Load()}
}

// Record appends s and persists the list before returning.
func (l *Log) Record(s Session) error {
	return l.store.AppendAndPersist(&l.list, s)
}

// List returns a copy of the recorded sessions.
func (l *Log) List() List {
	sessions := make([]Session, len(l.list.Sessions))
	copy(sessions, l.list.Sessions)
	return NewList(sessions)
}

// TotalWorkMinutes sums worked minutes over the log.
func (l *Log) TotalWorkMinutes() uint64 {
	return l.list.TotalWorkMinutes()
}
