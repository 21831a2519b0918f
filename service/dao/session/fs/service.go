// Package fs stores session snapshots as <baseURL>/<sessionID>/state.json on any afs backend.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/service/dao"
	"github.com/viant/mdflow/service/dao/criteria"
	"github.com/viant/mdflow/service/dao/session"
)

// Service implements a filesystem-based session storage
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ session.Store = (*Service)(nil)

// Save replaces the session snapshot file as a whole.
func (s *Service) Save(ctx context.Context, aSession *session.Session) error {
	if aSession == nil || aSession.State == nil {
		return dao.ErrNilEntity
	}
	if err := validID(aSession.ID); err != nil {
		return err
	}
	data, err := state.Encode(aSession.State)
	if err != nil {
		return fmt.Errorf("failed to encode session %v: %w", aSession.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.stateURL(aSession.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save session to %s: %w", URL, err)
	}
	return nil
}

// Load reads a session snapshot
func (s *Service) Load(ctx context.Context, id string) (*session.Session, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id string) (*session.Session, error) {
	URL := s.stateURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if session exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: session %s", dao.ErrNotFound, id)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	snapshot, err := state.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session.Session{ID: id, State: snapshot}, nil
}

// Delete removes a session directory
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dirURL := url.Join(s.baseURL, id)
	exists, err := s.fs.Exists(ctx, dirURL)
	if err != nil {
		return fmt.Errorf("failed to check if session exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: session %s", dao.ErrNotFound, id)
	}
	if err := s.fs.Delete(ctx, dirURL); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List returns sessions sorted by id. Directories without a readable
// snapshot are skipped.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.fs.Exists(ctx, s.baseURL)
	if err != nil || !exists {
		return nil, err
	}
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	basePath := strings.TrimRight(url.Path(s.baseURL), "/")
	var ids []string
	for _, object := range objects {
		if !object.IsDir() || strings.TrimRight(url.Path(object.URL()), "/") == basePath {
			continue
		}
		ids = append(ids, object.Name())
	}
	sort.Strings(ids)

	var sessions []*session.Session
	for _, id := range ids {
		aSession, err := s.load(ctx, id)
		if err != nil {
			continue
		}
		if !criteria.FilterByStatus(string(aSession.Status()), parameters) {
			continue
		}
		sessions = append(sessions, aSession)
	}
	return sessions, nil
}

func (s *Service) stateURL(id string) string {
	return url.Join(s.baseURL, id, session.FileName)
}

func validID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", dao.ErrInvalidID, id)
	}
	return nil
}

// New creates a session store rooted at baseURL (file://, mem:// or any afs scheme).
func New(baseURL string, fs afs.Service) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	baseURL = url.Normalize(baseURL, file.Scheme)

	ctx := context.Background()
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
