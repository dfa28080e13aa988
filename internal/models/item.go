package models

import (
	"time"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
)

type Item struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	Type        dto.ItemType
	Name        string
	Content     string
	ItemsIDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (i *Item) ToDTO() dto.Item {
	out := dto.Item{
		ID:          i.ID.String(),
		Type:        i.Type,
		Name:        i.Name,
		UserID:      i.UserID.String(),
		WorkspaceID: i.WorkspaceID.String(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}

	switch i.Type {
	case dto.ItemTypeDocument:
		out.Content = i.Content
	case dto.ItemTypeFolder:
		out.ItemsIDs = append([]string{}, i.ItemsIDs...)
	}
	return out
}
