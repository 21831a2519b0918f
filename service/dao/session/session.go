// Package session defines persisted runtime sessions.
package session

import (
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/service/dao"
)

// FileName is the snapshot file inside a session directory.
const FileName = "state.json"

// Session is a persisted state snapshot.
type Session struct {
	ID    string
	State *state.ConsistentState
}

// Store persists sessions; Load returns dao.ErrNotFound for unknown ids.
type Store = dao.Service[string, Session]

// Status returns the session status.
func (s *Session) Status() state.Status {
	if s.State == nil {
		return state.StatusNotStarted
	}
	return s.State.Status()
}
