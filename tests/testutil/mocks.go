package testutil

import (
	"context"
	"time"

	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/internal/oauth"
	"github.com/dimitrije/notes/internal/services"
	"github.com/dimitrije/notes/internal/sse"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	return m.user(m.Called(ctx, info))
}

func (m *MockUserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	return m.user(m.Called(ctx, email, name, password))
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return m.user(m.Called(ctx, email, password))
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	return m.user(m.Called(ctx, id, name))
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) workspace(args mock.Arguments) (*models.Workspace, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Create(ctx context.Context, name string, userID uuid.UUID) (*models.Workspace, error) {
	return m.workspace(m.Called(ctx, name, userID))
}

func (m *MockWorkspaceService) Authorize(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, error) {
	return m.workspace(m.Called(ctx, workspaceID, userID))
}

func (m *MockWorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name string) (*models.Workspace, error) {
	return m.workspace(m.Called(ctx, workspaceID, name))
}

func (m *MockWorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceService) UpdatePreferences(ctx context.Context, workspaceID uuid.UUID, patch models.Preferences) (models.Preferences, error) {
	args := m.Called(ctx, workspaceID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Preferences), args.Error(1)
}

// MockItemService mocks the ItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) item(args mock.Arguments) (*models.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemService) ListByWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.Item, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, userID uuid.UUID, in services.CreateItemInput) (*models.Item, error) {
	return m.item(m.Called(ctx, userID, in))
}

func (m *MockItemService) Get(ctx context.Context, itemID, userID uuid.UUID) (*models.Item, error) {
	return m.item(m.Called(ctx, itemID, userID))
}

func (m *MockItemService) Update(ctx context.Context, itemID, userID uuid.UUID, in services.UpdateItemInput) (*models.Item, error) {
	return m.item(m.Called(ctx, itemID, userID, in))
}

func (m *MockItemService) Delete(ctx context.Context, itemID, userID uuid.UUID) (*models.Item, error) {
	return m.item(m.Called(ctx, itemID, userID))
}

// MockTokenService mocks the refresh token store
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, oldHash, newHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockHub mocks the SSE hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) BroadcastItemCreated(workspaceID uuid.UUID, item dto.Item) {
	m.Called(workspaceID, item)
}

func (m *MockHub) BroadcastItemUpdated(workspaceID uuid.UUID, item dto.Item) {
	m.Called(workspaceID, item)
}

func (m *MockHub) BroadcastItemDeleted(workspaceID uuid.UUID, itemID string) {
	m.Called(workspaceID, itemID)
}

func (m *MockHub) BroadcastPreferencesUpdated(workspaceID uuid.UUID, prefs dto.Preferences) {
	m.Called(workspaceID, prefs)
}

func (m *MockHub) BroadcastWorkspaceUpdated(workspace dto.Workspace) {
	m.Called(workspace)
}

func (m *MockHub) BroadcastWorkspaceDeleted(workspaceID uuid.UUID) {
	m.Called(workspaceID)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
