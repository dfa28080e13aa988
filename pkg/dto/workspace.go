package dto

import (
	"errors"
	"time"
)

var ErrInvalidItemsSort = errors.New("invalid items sort")

type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ItemsSort orders sibling items at the root of a workspace tree.
type ItemsSort struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

func DefaultItemsSort() ItemsSort {
	return ItemsSort{Field: SortByName, Direction: SortAsc}
}

func (s ItemsSort) Validate() error {
	switch s.Field {
	case SortByName, SortByCreatedAt, SortByUpdatedAt:
	default:
		return ErrInvalidItemsSort
	}
	switch s.Direction {
	case SortAsc, SortDesc:
	default:
		return ErrInvalidItemsSort
	}
	return nil
}

// WithDefaults fills an empty field or direction from DefaultItemsSort.
func (s ItemsSort) WithDefaults() ItemsSort {
	def := DefaultItemsSort()
	if s.Field == "" {
		s.Field = def.Field
	}
	if s.Direction == "" {
		s.Direction = def.Direction
	}
	return s
}

type Preferences struct {
	ItemsSort *ItemsSort `json:"itemsSort,omitempty"`
}

type Workspace struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	UserID      string       `json:"userId"`
	Preferences *Preferences `json:"preferences,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type WorkspacesResponse struct {
	Workspaces []Workspace `json:"workspaces"`
}

type CreateWorkspaceRequest struct {
	Name string `json:"name"`
}

type UpdateWorkspaceRequest struct {
	Name string `json:"name"`
}
