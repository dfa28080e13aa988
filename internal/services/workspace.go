package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dimitrije/notes/internal/database"
	"github.com/dimitrije/notes/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workspaceColumns = `id, name, user_id, preferences, created_at, updated_at`

type WorkspaceService struct {
	db *database.DB
}

func NewWorkspaceService(db *database.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

func scanWorkspace(row pgx.Row) (*models.Workspace, error) {
	var ws models.Workspace
	if err := row.Scan(&ws.ID, &ws.Name, &ws.UserID, &ws.Preferences, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
		return nil, err
	}
	if ws.Preferences == nil {
		ws.Preferences = models.Preferences{}
	}
	return &ws, nil
}

func (s *WorkspaceService) Create(ctx context.Context, name string, userID uuid.UUID) (*models.Workspace, error) {
	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, user_id)
		VALUES ($1, $2)
		RETURNING `+workspaceColumns, name, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return ws, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1
	`, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

// Authorize returns the workspace if userID owns it. A missing workspace is
// ErrWorkspaceNotFound and someone else's is ErrForbidden.
func (s *WorkspaceService) Authorize(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, error) {
	ws, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws.UserID != userID {
		return nil, ErrForbidden
	}
	return ws, nil
}

func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+workspaceColumns+`
		FROM workspaces
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []models.Workspace{}
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *ws)
	}
	return workspaces, rows.Err()
}

func (s *WorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name string) (*models.Workspace, error) {
	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+workspaceColumns, name, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return ws, nil
}

// Delete removes the workspace and, through the foreign key, its items.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

// UpdatePreferences merges patch into the stored preferences key by key and
// returns the result. A null value removes the key.
func (s *WorkspaceService) UpdatePreferences(ctx context.Context, workspaceID uuid.UUID, patch models.Preferences) (models.Preferences, error) {
	if raw, ok := patch[models.PreferenceItemsSort]; ok && string(raw) != "null" {
		if sort := patch.ItemsSort(); sort == nil || sort.Validate() != nil {
			return nil, ErrInvalidPreferences
		}
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}

	var prefs models.Preferences
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces
		SET preferences = jsonb_strip_nulls(preferences || $1::jsonb), updated_at = NOW()
		WHERE id = $2
		RETURNING preferences
	`, data, workspaceID).Scan(&prefs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	if prefs == nil {
		prefs = models.Preferences{}
	}
	return prefs, nil
}
