package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/notes/internal/database"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/internal/oauth"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a Google-provider test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Name:       fmt.Sprintf("Test User %d", f.counter),
		Provider:   models.ProviderGoogle,
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO users (email, name, avatar_url, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Name, user.AvatarURL, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// CreateWorkspace creates a workspace owned by owner
func (f *Fixtures) CreateWorkspace(t *testing.T, owner *models.User, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		Name:        fmt.Sprintf("Test Workspace %d", f.counter),
		UserID:      owner.ID,
		Preferences: models.Preferences{},
	}

	for _, opt := range opts {
		opt(ws)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO workspaces (name, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, ws.Name, ws.UserID).Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

// CreateItem creates an item in workspace. Folders get the given children.
func (f *Fixtures) CreateItem(t *testing.T, workspace *models.Workspace, itemType dto.ItemType, name string, children ...string) *models.Item {
	t.Helper()

	item := &models.Item{
		WorkspaceID: workspace.ID,
		UserID:      workspace.UserID,
		Type:        itemType,
		Name:        name,
		ItemsIDs:    append([]string{}, children...),
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO items (workspace_id, user_id, type, name, items_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, item.WorkspaceID, item.UserID, string(item.Type), item.Name, item.ItemsIDs).Scan(
		&item.ID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	return item
}

func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()

	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}
