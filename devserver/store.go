package devserver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/session"
)

// record is one stored session plus simulation flags.
type record struct {
	session.Session
	// Fail makes the simulated lifecycle end in FAILED.
	Fail bool
	// EditedTranscript marks that the transcript came from the client, so
	// the simulator skips transcript generation.
	EditedTranscript bool
}

// upload is one stored file-upload record.
type upload struct {
	ID           string
	SessionID    string
	MimeType     string
	OriginalName string
	InternalName string
	Completed    bool
	Data         []byte
}

// store is the in-memory backing state, safe for concurrent handlers and
// lifecycle goroutines.
type store struct {
	mu       sync.Mutex
	sessions map[string]*record
	uploads  map[string]*upload
}

func newStore() *store {
	return &store{
		sessions: make(map[string]*record),
		uploads:  make(map[string]*upload),
	}
}

func (s *store) createSession(rec record) *record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ExternalID = uuid.NewString()
	s.sessions[rec.ExternalID] = &rec
	out := rec
	return &out
}

func (s *store) getSession(id string) (*record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, errors.NotFound("session", id)
	}
	out := *rec
	return &out, nil
}

// updateSession applies fn to the stored record under the lock and returns
// the updated copy.
func (s *store) updateSession(id string, fn func(*record)) (*record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, errors.NotFound("session", id)
	}
	fn(rec)
	out := *rec
	return &out, nil
}

func (s *store) createUpload(u upload) *upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = uuid.NewString()
	u.InternalName = uuid.NewString() + ".audio"
	s.uploads[u.ID] = &u
	out := u
	return &out
}

func (s *store) getUpload(id string) (*upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return nil, errors.NotFound("upload", id)
	}
	out := *u
	return &out, nil
}

func (s *store) updateUpload(id string, fn func(*upload)) (*upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return nil, errors.NotFound("upload", id)
	}
	fn(u)
	out := *u
	return &out, nil
}
