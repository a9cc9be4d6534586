package server

import (
	"net/http"
	"sync"

	"word-jam/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionStore hands every browser session an opaque user id and carries
// one-shot flash messages between a mutation and the next render. Sessions
// are persisted when a database is available and fall back to memory
// otherwise (tests, local runs without Postgres).
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]sessionData
}

type sessionData struct {
	UserID string
	Flash  string
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]sessionData),
	}
}

// UserID returns the opaque identity for the request's session, minting one
// on first visit. This is the sole notion of "who" in the system; it is
// deliberately unauthenticated.
func (s *sessionStore) UserID(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		data := s.sessions[id]
		if data.UserID == "" {
			data.UserID = uuid.NewString()
			s.sessions[id] = data
		}
		return data.UserID
	}
	record := s.loadRecord(id)
	return record.UserID
}

func (s *sessionStore) SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		data := s.sessions[id]
		data.Flash = message
		s.sessions[id] = data
		s.mu.Unlock()
		return
	}
	s.loadRecord(id)
	_ = s.db.Model(&db.Session{}).Where("id = ?", id).Update("flash", message).Error
}

func (s *sessionStore) PopFlash(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		data := s.sessions[id]
		message := data.Flash
		data.Flash = ""
		s.sessions[id] = data
		return message
	}
	record := s.loadRecord(id)
	if record.Flash == "" {
		return ""
	}
	_ = s.db.Model(&db.Session{}).Where("id = ?", id).Update("flash", "").Error
	return record.Flash
}

// loadRecord fetches the session row, creating it with a fresh user id on
// first sight.
func (s *sessionStore) loadRecord(id string) db.Session {
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err == nil {
		return record
	}
	record = db.Session{ID: id, UserID: uuid.NewString()}
	_ = s.db.Create(&record).Error
	return record
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("wj_session")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "wj_session",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
