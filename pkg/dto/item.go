package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

type ItemType string

const (
	ItemTypeDocument ItemType = "document"
	ItemTypeFolder   ItemType = "folder"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeDocument, ItemTypeFolder:
		return true
	default:
		return false
	}
}

// Item is either a document or a folder, discriminated by Type.
// Content is only meaningful for documents and ItemsIDs only for folders;
// code that branches on the variant must switch on Type.
type Item struct {
	ID          string
	Type        ItemType
	Name        string
	UserID      string
	WorkspaceID string
	Content     string
	ItemsIDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type itemJSON struct {
	ID          string    `json:"id"`
	Type        ItemType  `json:"type"`
	Name        string    `json:"name"`
	UserID      string    `json:"userId"`
	WorkspaceID string    `json:"workspaceId"`
	Content     *string   `json:"content,omitempty"`
	ItemsIDs    *[]string `json:"itemsIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	w := itemJSON{
		ID:          i.ID,
		Type:        i.Type,
		Name:        i.Name,
		UserID:      i.UserID,
		WorkspaceID: i.WorkspaceID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}

	switch i.Type {
	case ItemTypeDocument:
		content := i.Content
		w.Content = &content
	case ItemTypeFolder:
		ids := i.ItemsIDs
		if ids == nil {
			ids = []string{}
		}
		w.ItemsIDs = &ids
	default:
		return nil, fmt.Errorf("unknown item type %q", i.Type)
	}

	return json.Marshal(w)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var w itemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*i = Item{
		ID:          w.ID,
		Type:        w.Type,
		Name:        w.Name,
		UserID:      w.UserID,
		WorkspaceID: w.WorkspaceID,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}

	switch w.Type {
	case ItemTypeDocument:
		if w.Content != nil {
			i.Content = *w.Content
		}
	case ItemTypeFolder:
		i.ItemsIDs = []string{}
		if w.ItemsIDs != nil {
			i.ItemsIDs = append(i.ItemsIDs, (*w.ItemsIDs)...)
		}
	default:
		return fmt.Errorf("unknown item type %q", w.Type)
	}
	return nil
}

// Clone returns a copy that shares no slices with i.
func (i Item) Clone() Item {
	c := i
	if i.ItemsIDs != nil {
		c.ItemsIDs = append([]string(nil), i.ItemsIDs...)
	}
	return c
}

type CreateItemRequest struct {
	Name        string   `json:"name"`
	WorkspaceID string   `json:"workspaceId"`
	Type        ItemType `json:"type"`
	Content     *string  `json:"content,omitempty"`
	ItemsIDs    []string `json:"itemsIds,omitempty"`
}

// UpdateItemRequest is a partial update; nil fields are left unchanged.
type UpdateItemRequest struct {
	Name     *string   `json:"name,omitempty"`
	Content  *string   `json:"content,omitempty"`
	ItemsIDs *[]string `json:"itemsIds,omitempty"`
}

// Apply returns a copy of item with the set fields of r merged in.
// Content only applies to documents and ItemsIDs only to folders.
func (r UpdateItemRequest) Apply(item Item) Item {
	out := item.Clone()
	if r.Name != nil {
		out.Name = *r.Name
	}

	switch out.Type {
	case ItemTypeDocument:
		if r.Content != nil {
			out.Content = *r.Content
		}
	case ItemTypeFolder:
		if r.ItemsIDs != nil {
			out.ItemsIDs = append([]string{}, (*r.ItemsIDs)...)
		}
	}
	return out
}

type ItemsResponse struct {
	Items []Item `json:"items"`
}
