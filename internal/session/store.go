package session

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"monad-sniper-bot/storage"
)

// Store owns every live session. Access goes through WithSession,
// which serializes work per user: two updates from the same user never
// interleave, while different users proceed in parallel.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
	db       *storage.DB
}

func NewStore(db *storage.DB) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
		db:       db,
	}
}

// userLock returns the per-user mutex, creating it on first use
func (st *Store) userLock(userID int64) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()
	l, ok := st.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		st.locks[userID] = l
	}
	return l
}

// load returns the cached session, falling back to the database and
// finally to a fresh session with default settings.
func (st *Store) load(userID int64) *Session {
	st.mu.Lock()
	if s, ok := st.sessions[userID]; ok {
		st.mu.Unlock()
		return s
	}
	st.mu.Unlock()

	s := newSession(userID)
	if st.db != nil {
		data, err := st.db.LoadSession(userID)
		if err != nil {
			log.Printf("⚠️ Failed to load session for %d: %v", userID, err)
		} else if data != nil {
			if err := json.Unmarshal(data, s); err != nil {
				log.Printf("⚠️ Corrupt session for %d, starting fresh: %v", userID, err)
				s = newSession(userID)
			}
		}
	}

	st.mu.Lock()
	if cached, ok := st.sessions[userID]; ok {
		s = cached
	} else {
		st.sessions[userID] = s
	}
	st.mu.Unlock()
	return s
}

// WithSession runs fn against the user's session while holding that
// user's lock, then persists the result. The session is saved even
// when fn returns an error: a failed action may still have consumed a
// pending prompt.
func (st *Store) WithSession(userID int64, fn func(*Session) error) error {
	l := st.userLock(userID)
	l.Lock()
	defer l.Unlock()

	s := st.load(userID)
	fnErr := fn(s)

	if st.db != nil {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		if err := st.db.SaveSession(userID, data); err != nil {
			log.Printf("⚠️ Failed to persist session for %d: %v", userID, err)
		}
	}

	return fnErr
}

// Peek returns a snapshot copy of a session without persisting
// anything. Background jobs use it to read state.
func (st *Store) Peek(userID int64) Session {
	l := st.userLock(userID)
	l.Lock()
	defer l.Unlock()

	return *st.load(userID)
}

// UserIDs lists every user with a live session
func (st *Store) UserIDs() []int64 {
	st.mu.Lock()
	defer st.mu.Unlock()

	ids := make([]int64, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	return ids
}
