// Package memory keeps session snapshots in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/service/dao"
	"github.com/viant/mdflow/service/dao/criteria"
	"github.com/viant/mdflow/service/dao/session"
)

// Service stores encoded snapshots so that loaded sessions never alias saved ones.
type Service struct {
	sessions map[string][]byte
	mux      sync.RWMutex
}

var _ session.Store = (*Service)(nil)

// New creates an in-memory session store
func New() *Service {
	return &Service{sessions: map[string][]byte{}}
}

func (s *Service) Save(_ context.Context, aSession *session.Session) error {
	if aSession == nil || aSession.State == nil {
		return dao.ErrNilEntity
	}
	if aSession.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := state.Encode(aSession.State)
	if err != nil {
		return err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.sessions[aSession.ID] = data
	return nil
}

func (s *Service) Load(_ context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mux.RLock()
	data, ok := s.sessions[id]
	s.mux.RUnlock()
	if !ok {
		return nil, dao.ErrNotFound
	}
	snapshot, err := state.Decode(data)
	if err != nil {
		return nil, err
	}
	return &session.Session{ID: id, State: snapshot}, nil
}

func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns sessions sorted by id, filtered by the Status parameter.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*session.Session, error) {
	s.mux.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mux.RUnlock()
	sort.Strings(ids)

	var out []*session.Session
	for _, id := range ids {
		aSession, err := s.Load(ctx, id)
		if err != nil {
			continue
		}
		if !criteria.FilterByStatus(string(aSession.Status()), parameters) {
			continue
		}
		out = append(out, aSession)
	}
	return out, nil
}
