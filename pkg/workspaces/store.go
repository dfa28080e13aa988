// Package workspaces tracks the user's workspaces and the items session of the
// active one.
package workspaces

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/items"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrEmptyName         = errors.New("workspace name is required")

	// ErrItemsNotLoaded wraps a failure to fetch the items of a workspace
	// that was activated. The failure itself is reported by the items session.
	ErrItemsNotLoaded = errors.New("failed to load workspace items")
)

type Remote interface {
	items.Remote
	ListWorkspaces(ctx context.Context) ([]dto.Workspace, error)
	CreateWorkspace(ctx context.Context, name string) (*dto.Workspace, error)
	UpdateWorkspace(ctx context.Context, id, name string) (*dto.Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error
}

type Status struct {
	IsLoading     bool
	IsInitialized bool
	Error         string
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionOptions passes opts to every items session the store opens.
func WithSessionOptions(opts ...items.Option) Option {
	return func(s *Store) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

type Store struct {
	remote      Remote
	logger      *log.Logger
	sessionOpts []items.Option

	mu          sync.Mutex
	workspaces  []dto.Workspace
	active      *dto.Workspace
	session     *items.Session
	inFlight    int
	initialized bool
	errMsg      string
}

func NewStore(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote:     remote,
		logger:     log.Default(),
		workspaces: []dto.Workspace{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessionOpts = append([]items.Option{items.WithLogger(s.logger)}, s.sessionOpts...)
	return s
}

// Picker chooses the workspace to activate from a freshly loaded list. An
// empty id falls back to the first workspace.
type Picker func(list []dto.Workspace) (string, error)

// Fetch loads the workspace list. When no workspace is active the first one is
// activated and its items are fetched.
func (s *Store) Fetch(ctx context.Context) ([]dto.Workspace, error) {
	return s.FetchWith(ctx, nil)
}

// FetchWith is Fetch with pick choosing the workspace to activate. pick is
// only consulted when nothing is active or the active workspace is gone. When
// it fails nothing is activated and its error is returned.
func (s *Store) FetchWith(ctx context.Context, pick Picker) (_ []dto.Workspace, err error) {
	s.begin()
	defer func() { err = s.end("fetch workspaces", err) }()

	list, err := s.remote.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.workspaces = slices.Clone(list)
	s.initialized = true
	keep := false
	if s.active != nil {
		if idx := s.index(s.active.ID); idx >= 0 {
			ws := s.workspaces[idx]
			s.active = &ws
			keep = true
		} else {
			s.deactivateLocked()
		}
	}
	out := slices.Clone(s.workspaces)
	s.mu.Unlock()

	if keep || len(out) == 0 {
		return out, nil
	}

	next := out[0]
	if pick != nil {
		id, err := pick(out)
		if err != nil {
			return out, err
		}
		if id != "" {
			idx := slices.IndexFunc(out, func(ws dto.Workspace) bool { return ws.ID == id })
			if idx < 0 {
				return out, ErrWorkspaceNotFound
			}
			next = out[idx]
		}
	}

	if err := s.activate(ctx, next); err != nil {
		return out, err
	}
	return out, nil
}

// Create adds a workspace and makes it active.
func (s *Store) Create(ctx context.Context, name string) (_ *dto.Workspace, err error) {
	s.begin()
	defer func() { err = s.end("create workspace", err) }()

	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	ws, err := s.remote.CreateWorkspace(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.workspaces = append(s.workspaces, *ws)
	s.mu.Unlock()

	out := *ws
	return &out, s.activate(ctx, out)
}

// Update renames a workspace. The items session of an active workspace is kept.
func (s *Store) Update(ctx context.Context, id, name string) (_ *dto.Workspace, err error) {
	s.begin()
	defer func() { err = s.end("update workspace", err) }()

	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	updated, err := s.remote.UpdateWorkspace(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.index(id); idx >= 0 {
		s.workspaces[idx].Name = name
	}
	if s.active != nil && s.active.ID == id {
		s.active.Name = name
	}
	return updated, nil
}

// Delete removes a workspace. Deleting the active workspace activates the
// first remaining one, if any.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	s.begin()
	defer func() { err = s.end("delete workspace", err) }()

	if err := s.remote.DeleteWorkspace(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.workspaces = slices.DeleteFunc(s.workspaces, func(ws dto.Workspace) bool { return ws.ID == id })
	wasActive := s.active != nil && s.active.ID == id
	var next *dto.Workspace
	if wasActive {
		s.deactivateLocked()
		if len(s.workspaces) > 0 {
			ws := s.workspaces[0]
			next = &ws
		}
	}
	s.mu.Unlock()

	if next != nil {
		return s.activate(ctx, *next)
	}
	return nil
}

// SetActive switches to the workspace with the given id. An empty id closes
// the current session and leaves no workspace active.
func (s *Store) SetActive(ctx context.Context, id string) error {
	if id == "" {
		s.mu.Lock()
		s.deactivateLocked()
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrWorkspaceNotFound
	}
	ws := s.workspaces[idx]
	s.mu.Unlock()

	return s.activate(ctx, ws)
}

// Close closes the active items session. Used on sign-out.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateLocked()
	s.workspaces = []dto.Workspace{}
	s.initialized = false
}

// activate opens an items session for ws and fetches its items. Activating the
// workspace that is already active only refreshes its record.
func (s *Store) activate(ctx context.Context, ws dto.Workspace) error {
	s.mu.Lock()
	if s.active != nil && s.active.ID == ws.ID && s.session != nil {
		s.active = &ws
		s.mu.Unlock()
		return nil
	}

	s.deactivateLocked()
	opts := slices.Clone(s.sessionOpts)
	if ws.Preferences != nil && ws.Preferences.ItemsSort != nil {
		opts = append(opts, items.WithInitialSort(ws.Preferences.ItemsSort.WithDefaults()))
	}
	session := items.NewSession(s.remote, ws.ID, opts...)
	s.active = &ws
	s.session = session
	s.mu.Unlock()

	if err := session.Fetch(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrItemsNotLoaded, err)
	}
	return nil
}

func (s *Store) deactivateLocked() {
	if s.session != nil {
		s.session.Close()
	}
	s.session = nil
	s.active = nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inFlight++
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Store) end(op string, err error) error {
	record := err != nil && !errors.Is(err, ErrItemsNotLoaded)

	s.mu.Lock()
	s.inFlight--
	if record {
		s.errMsg = err.Error()
	}
	s.mu.Unlock()

	if record {
		s.logger.Printf("workspaces: %s: %v", op, err)
	}
	return err
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.workspaces, func(ws dto.Workspace) bool { return ws.ID == id })
}

func (s *Store) Workspaces() []dto.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.workspaces)
}

func (s *Store) Active() (dto.Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return dto.Workspace{}, false
	}
	return *s.active, true
}

// Items returns the session of the active workspace, or nil.
func (s *Store) Items() *items.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{IsLoading: s.inFlight > 0, IsInitialized: s.initialized, Error: s.errMsg}
}
