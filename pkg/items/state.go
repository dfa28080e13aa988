package items

import (
	"slices"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/tree"
)

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		WorkspaceID: s.workspaceID,
		Items:       cloneItems(s.items),
		Tree:        slices.Clone(s.nodes),
		Sort:        s.sort,
		Status:      Status{IsLoading: s.inFlight > 0, Error: s.errMsg},
	}
	if s.active != nil {
		active := s.active.Clone()
		snap.Active = &active
	}
	return snap
}

func (s *Session) Items() []dto.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Tree returns the root nodes. The nodes must not be modified.
func (s *Session) Tree() []*tree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.nodes)
}

func (s *Session) Active() (dto.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return dto.Item{}, false
	}
	return s.active.Clone(), true
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{IsLoading: s.inFlight > 0, Error: s.errMsg}
}

func (s *Session) Sort() dto.ItemsSort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// Item returns a copy of the item with the given id.
func (s *Session) Item(id string) (dto.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.find(id)
	if item == nil {
		return dto.Item{}, false
	}
	return *item, true
}
