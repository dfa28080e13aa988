package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/notes/internal/database"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, workspace_id, user_id, type, name, content, items_ids, created_at, updated_at`

type ItemService struct {
	db         *database.DB
	workspaces *WorkspaceService
}

func NewItemService(db *database.DB, workspaces *WorkspaceService) *ItemService {
	return &ItemService{db: db, workspaces: workspaces}
}

type CreateItemInput struct {
	WorkspaceID uuid.UUID
	Type        dto.ItemType
	Name        string
	Content     string
	ItemsIDs    []string
}

type UpdateItemInput struct {
	Name     *string
	Content  *string
	ItemsIDs *[]string
}

func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	var itemType string
	err := row.Scan(
		&item.ID, &item.WorkspaceID, &item.UserID, &itemType, &item.Name,
		&item.Content, &item.ItemsIDs, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Type = dto.ItemType(itemType)
	if item.ItemsIDs == nil {
		item.ItemsIDs = []string{}
	}
	return &item, nil
}

// ListByWorkspace returns the items of a workspace the user owns.
func (s *ItemService) ListByWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.Item, error) {
	if _, err := s.workspaces.Authorize(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE workspace_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemService) Create(ctx context.Context, userID uuid.UUID, in CreateItemInput) (*models.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyName
	}

	content := ""
	itemsIDs := []string{}
	switch in.Type {
	case dto.ItemTypeDocument:
		content = in.Content
	case dto.ItemTypeFolder:
		if in.ItemsIDs != nil {
			itemsIDs = in.ItemsIDs
		}
	default:
		return nil, ErrInvalidItemType
	}

	if _, err := s.workspaces.Authorize(ctx, in.WorkspaceID, userID); err != nil {
		return nil, err
	}

	item, err := scanItem(s.db.Pool.QueryRow(ctx, `
		INSERT INTO items (workspace_id, user_id, type, name, content, items_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		in.WorkspaceID, userID, string(in.Type), in.Name, content, itemsIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// Get returns the item if userID owns it.
func (s *ItemService) Get(ctx context.Context, itemID, userID uuid.UUID) (*models.Item, error) {
	item, err := scanItem(s.db.Pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}

// Update applies a partial update. Content is ignored for folders and
// ItemsIDs for documents.
func (s *ItemService) Update(ctx context.Context, itemID, userID uuid.UUID, in UpdateItemInput) (*models.Item, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, ErrEmptyName
	}

	current, err := s.Get(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if in.Name != nil {
		name = *in.Name
	}
	content := current.Content
	itemsIDs := current.ItemsIDs

	switch current.Type {
	case dto.ItemTypeDocument:
		if in.Content != nil {
			content = *in.Content
		}
	case dto.ItemTypeFolder:
		if in.ItemsIDs != nil {
			itemsIDs = *in.ItemsIDs
			if itemsIDs == nil {
				itemsIDs = []string{}
			}
		}
	default:
		return nil, ErrInvalidItemType
	}

	item, err := scanItem(s.db.Pool.QueryRow(ctx, `
		UPDATE items SET name = $1, content = $2, items_ids = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+itemColumns,
		name, content, itemsIDs, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// Delete removes the item and returns it as it was.
func (s *ItemService) Delete(ctx context.Context, itemID, userID uuid.UUID) (*models.Item, error) {
	item, err := s.Get(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrItemNotFound
	}
	return item, nil
}
