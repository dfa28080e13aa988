package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/internal/oauth"
	"github.com/dimitrije/notes/internal/services"
	"github.com/dimitrije/notes/internal/sse"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, name string, userID uuid.UUID) (*models.Workspace, error)
	Authorize(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error)
	Update(ctx context.Context, workspaceID uuid.UUID, name string) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID uuid.UUID) error
	UpdatePreferences(ctx context.Context, workspaceID uuid.UUID, patch models.Preferences) (models.Preferences, error)
}

// ItemServiceInterface defines the methods used by handlers from ItemService
type ItemServiceInterface interface {
	ListByWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.Item, error)
	Create(ctx context.Context, userID uuid.UUID, in services.CreateItemInput) (*models.Item, error)
	Get(ctx context.Context, itemID, userID uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, itemID, userID uuid.UUID, in services.UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, itemID, userID uuid.UUID) (*models.Item, error)
}

// TokenServiceInterface is the refresh token store. It is backed by Postgres
// (services.TokenService) or Redis (session.RedisStore).
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// HubInterface defines the methods used by handlers from the SSE hub
type HubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	BroadcastItemCreated(workspaceID uuid.UUID, item dto.Item)
	BroadcastItemUpdated(workspaceID uuid.UUID, item dto.Item)
	BroadcastItemDeleted(workspaceID uuid.UUID, itemID string)
	BroadcastPreferencesUpdated(workspaceID uuid.UUID, prefs dto.Preferences)
	BroadcastWorkspaceUpdated(workspace dto.Workspace)
	BroadcastWorkspaceDeleted(workspaceID uuid.UUID)
}
