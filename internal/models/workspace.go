package models

import (
	"encoding/json"
	"time"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
)

// Preferences is the stored preferences document of a workspace. Keys the
// server does not know about are kept as they were written.
type Preferences map[string]json.RawMessage

const PreferenceItemsSort = "itemsSort"

type Workspace struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	UserID      uuid.UUID   `json:"user_id"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ItemsSort returns the saved items sort, or nil if none is saved or it does
// not decode.
func (p Preferences) ItemsSort() *dto.ItemsSort {
	raw, ok := p[PreferenceItemsSort]
	if !ok {
		return nil
	}
	var sort dto.ItemsSort
	if err := json.Unmarshal(raw, &sort); err != nil {
		return nil
	}
	return &sort
}

func (w *Workspace) ToDTO() dto.Workspace {
	out := dto.Workspace{
		ID:        w.ID.String(),
		Name:      w.Name,
		UserID:    w.UserID.String(),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if sort := w.Preferences.ItemsSort(); sort != nil {
		out.Preferences = &dto.Preferences{ItemsSort: sort}
	}
	return out
}
