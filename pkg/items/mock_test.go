package items

import (
	"context"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/stretchr/testify/mock"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) ListItems(ctx context.Context, workspaceID string) ([]dto.Item, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.Item), args.Error(1)
}

func (m *mockRemote) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.Item, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Item), args.Error(1)
}

func (m *mockRemote) UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.Item, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Item), args.Error(1)
}

func (m *mockRemote) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRemote) GetPreferences(ctx context.Context, workspaceID string) (*dto.Preferences, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Preferences), args.Error(1)
}

func (m *mockRemote) UpdatePreferences(ctx context.Context, workspaceID string, prefs dto.Preferences) (*dto.Preferences, error) {
	args := m.Called(ctx, workspaceID, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Preferences), args.Error(1)
}
