// Package items keeps the items of one workspace in sync with the server and
// derives the displayed tree from them.
package items

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/tree"
)

// Remote is the part of the API a Session needs. *client.Client satisfies it.
type Remote interface {
	ListItems(ctx context.Context, workspaceID string) ([]dto.Item, error)
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.Item, error)
	UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.Item, error)
	DeleteItem(ctx context.Context, id string) error
	GetPreferences(ctx context.Context, workspaceID string) (*dto.Preferences, error)
	UpdatePreferences(ctx context.Context, workspaceID string, prefs dto.Preferences) (*dto.Preferences, error)
}

type Status struct {
	IsLoading bool
	Error     string
}

// Snapshot is a consistent copy of the session state. Tree nodes are shared
// between snapshots and must not be modified.
type Snapshot struct {
	WorkspaceID string
	Items       []dto.Item
	Tree        []*tree.Node
	Active      *dto.Item
	Sort        dto.ItemsSort
	Status      Status
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSortRollback restores the previous sort order when saving a new one
// fails. By default the new order is kept locally.
func WithSortRollback() Option {
	return func(s *Session) {
		s.rollbackSort = true
	}
}

// WithInitialSort sets the sort order used until Fetch loads the saved one.
func WithInitialSort(sort dto.ItemsSort) Option {
	return func(s *Session) {
		if sort.Validate() == nil {
			s.sort = sort
		}
	}
}

// Session holds the items of a single workspace. It is created when the
// workspace is activated and closed when another one is.
//
// The flat item list is the source of truth; the tree is rebuilt from it and
// the sort order after every change. Locks are never held across requests.
type Session struct {
	remote       Remote
	workspaceID  string
	logger       *log.Logger
	rollbackSort bool

	mu       sync.Mutex
	items    []dto.Item
	nodes    []*tree.Node
	active   *dto.Item
	sort     dto.ItemsSort
	inFlight int
	errMsg   string
	fetchGen uint64
	closed   bool

	listeners    map[int]func(Snapshot)
	nextListener int
}

func NewSession(remote Remote, workspaceID string, opts ...Option) *Session {
	s := &Session{
		remote:      remote,
		workspaceID: workspaceID,
		logger:      log.Default(),
		items:       []dto.Item{},
		nodes:       []*tree.Node{},
		sort:        dto.DefaultItemsSort(),
		listeners:   make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) WorkspaceID() string {
	return s.workspaceID
}

// Fetch replaces the local items with the server's and loads the saved sort
// order. A failure to load the sort order is logged and the current order kept.
func (s *Session) Fetch(ctx context.Context) (err error) {
	if err := s.begin(); err != nil {
		return err
	}
	defer func() { err = s.end("fetch items", err) }()

	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()

	fetched, err := s.remote.ListItems(ctx, s.workspaceID)
	if err != nil {
		return err
	}

	var saved *dto.ItemsSort
	prefs, perr := s.remote.GetPreferences(ctx, s.workspaceID)
	switch {
	case perr != nil:
		s.logger.Printf("items: failed to load sort preferences for workspace %s: %v", s.workspaceID, perr)
	case prefs != nil && prefs.ItemsSort != nil:
		if sort := prefs.ItemsSort.WithDefaults(); sort.Validate() == nil {
			saved = &sort
		}
	}

	return s.commit(func() error {
		if gen != s.fetchGen {
			return ErrStaleFetch
		}
		s.items = cloneItems(fetched)
		if saved != nil {
			s.sort = *saved
		}
		if s.active != nil {
			s.active = s.find(s.active.ID)
		}
		return nil
	})
}

// SetActive selects the item with the given id. An empty id clears the
// selection.
func (s *Session) SetActive(id string) error {
	s.mu.Lock()
	if id == "" {
		s.active = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}
	item := s.find(id)
	if item == nil {
		s.mu.Unlock()
		return ErrItemNotFound
	}
	s.active = item
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Session) CreateDocument(ctx context.Context, name, content string) (*dto.Item, error) {
	return s.create(ctx, dto.CreateItemRequest{
		Name:        name,
		WorkspaceID: s.workspaceID,
		Type:        dto.ItemTypeDocument,
		Content:     &content,
	})
}

func (s *Session) CreateFolder(ctx context.Context, name string) (*dto.Item, error) {
	return s.create(ctx, dto.CreateItemRequest{
		Name:        name,
		WorkspaceID: s.workspaceID,
		Type:        dto.ItemTypeFolder,
		ItemsIDs:    []string{},
	})
}

func (s *Session) create(ctx context.Context, req dto.CreateItemRequest) (created *dto.Item, err error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer func() { err = s.end("create "+string(req.Type), err) }()

	if !validName(req.Name) {
		return nil, ErrEmptyName
	}

	item, err := s.remote.CreateItem(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.commit(func() error {
		s.items = append(s.items, item.Clone())
		return nil
	}); err != nil {
		return nil, err
	}

	out := item.Clone()
	return &out, nil
}

// Update sends a partial update and patches the local item with the same
// fields. The server's updatedAt is taken when the response carries one.
func (s *Session) Update(ctx context.Context, id string, req dto.UpdateItemRequest) (updated *dto.Item, err error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer func() { err = s.end("update item", err) }()

	if req.Name != nil && !validName(*req.Name) {
		return nil, ErrEmptyName
	}

	resp, err := s.remote.UpdateItem(ctx, id, req)
	if err != nil {
		return nil, err
	}

	var result dto.Item
	if err := s.commit(func() error {
		idx := s.index(id)
		if idx < 0 {
			if resp == nil {
				return ErrItemNotFound
			}
			result = resp.Clone()
			return nil
		}
		patched := req.Apply(s.items[idx])
		if resp != nil && !resp.UpdatedAt.IsZero() {
			patched.UpdatedAt = resp.UpdatedAt
		}
		s.items[idx] = patched
		if s.active != nil && s.active.ID == id {
			active := patched.Clone()
			s.active = &active
		}
		result = patched.Clone()
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete removes the item on the server and locally. Folders that still list
// its id are left alone; the tree skips the dangling reference.
func (s *Session) Delete(ctx context.Context, id string) (err error) {
	if err := s.begin(); err != nil {
		return err
	}
	defer func() { err = s.end("delete item", err) }()

	if err := s.remote.DeleteItem(ctx, id); err != nil {
		return err
	}

	return s.commit(func() error {
		s.items = slices.DeleteFunc(s.items, func(it dto.Item) bool { return it.ID == id })
		if s.active != nil && s.active.ID == id {
			s.active = nil
		}
		return nil
	})
}

// MoveToFolder appends itemID to the folder's children and updates the folder.
// The moved item itself is not changed. Moving an item into a folder that
// already lists it returns the folder without sending a request. A folder
// cannot be moved into itself or into any folder below it.
func (s *Session) MoveToFolder(ctx context.Context, itemID, folderID string) (*dto.Item, error) {
	if itemID == folderID || s.contains(itemID, folderID) {
		return nil, s.fail("move item", ErrInvalidMove)
	}

	folder, err := s.folder(folderID)
	if err != nil {
		return nil, s.fail("move item", err)
	}
	if slices.Contains(folder.ItemsIDs, itemID) {
		return &folder, nil
	}

	ids := append(slices.Clone(folder.ItemsIDs), itemID)
	return s.Update(ctx, folderID, dto.UpdateItemRequest{Name: &folder.Name, ItemsIDs: &ids})
}

// RemoveFromFolder drops itemID from the folder's children and updates the
// folder.
func (s *Session) RemoveFromFolder(ctx context.Context, itemID, folderID string) (*dto.Item, error) {
	folder, err := s.folder(folderID)
	if err != nil {
		return nil, s.fail("remove item from folder", err)
	}

	ids := slices.DeleteFunc(slices.Clone(folder.ItemsIDs), func(id string) bool { return id == itemID })
	if ids == nil {
		ids = []string{}
	}
	return s.Update(ctx, folderID, dto.UpdateItemRequest{Name: &folder.Name, ItemsIDs: &ids})
}

// SetSortOrder applies the order and rebuilds the tree right away, then saves
// it to the workspace preferences. When saving fails the new order stays in
// effect unless the session was created WithSortRollback.
func (s *Session) SetSortOrder(ctx context.Context, field dto.SortField, direction dto.SortDirection) (err error) {
	next := dto.ItemsSort{Field: field, Direction: direction}
	if next.Validate() != nil {
		return s.fail("set sort order", ErrInvalidSort)
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer func() { err = s.end("save sort preferences", err) }()

	s.mu.Lock()
	prev := s.sort
	s.sort = next
	s.rebuild()
	s.mu.Unlock()
	s.notify()

	_, err = s.remote.UpdatePreferences(ctx, s.workspaceID, dto.Preferences{ItemsSort: &next})
	if err == nil || !s.rollbackSort {
		return err
	}

	s.mu.Lock()
	if !s.closed && s.sort == next {
		s.sort = prev
		s.rebuild()
	}
	s.mu.Unlock()
	return err
}

func (s *Session) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// Close detaches the session. Requests still in flight finish but their
// results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[int]func(Snapshot))
	s.mu.Unlock()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Subscribe registers fn to receive a snapshot after every state change. The
// returned func removes it.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) begin() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.inFlight++
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Session) end(op string, err error) error {
	s.mu.Lock()
	s.inFlight--
	record := err != nil && !s.closed && !errors.Is(err, ErrStaleFetch)
	if record {
		s.errMsg = err.Error()
	}
	s.mu.Unlock()

	if record {
		s.logger.Printf("items: %s in workspace %s: %v", op, s.workspaceID, err)
	}
	s.notify()
	return err
}

// fail records a failure that happened before any request was sent.
func (s *Session) fail(op string, err error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.errMsg = err.Error()
	s.mu.Unlock()

	s.logger.Printf("items: %s in workspace %s: %v", op, s.workspaceID, err)
	s.notify()
	return err
}

// commit runs patch under the lock and rebuilds the tree, unless the session
// was closed while the request was in flight.
func (s *Session) commit(patch func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if err := patch(); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

func (s *Session) rebuild() {
	s.nodes = tree.Build(s.items, s.sort)
}

func (s *Session) index(id string) int {
	return slices.IndexFunc(s.items, func(it dto.Item) bool { return it.ID == id })
}

// find returns a copy of the item with the given id, or nil.
func (s *Session) find(id string) *dto.Item {
	idx := s.index(id)
	if idx < 0 {
		return nil
	}
	item := s.items[idx].Clone()
	return &item
}

func (s *Session) folder(id string) (dto.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return dto.Item{}, ErrFolderNotFound
	}
	switch s.items[idx].Type {
	case dto.ItemTypeFolder:
		return s.items[idx].Clone(), nil
	default:
		return dto.Item{}, ErrFolderNotFound
	}
}

// contains reports whether targetID is listed anywhere below the folder
// rootID. Documents contain nothing.
func (s *Session) contains(rootID, targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{rootID: true}
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := s.index(id)
		if idx < 0 || s.items[idx].Type != dto.ItemTypeFolder {
			continue
		}
		for _, child := range s.items[idx].ItemsIDs {
			if child == targetID {
				return true
			}
			if !seen[child] {
				seen[child] = true
				stack = append(stack, child)
			}
		}
	}
	return false
}

func (s *Session) notify() {
	s.mu.Lock()
	if len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func validName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func cloneItems(items []dto.Item) []dto.Item {
	out := make([]dto.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
