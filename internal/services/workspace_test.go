package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dimitrije/notes/internal/database"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workspaceRowColumns = []string{"id", "name", "user_id", "preferences", "created_at", "updated_at"}

func setupWorkspaceService(t *testing.T) (*WorkspaceService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewWorkspaceService(&database.DB{Pool: mock}), mock
}

func workspaceRow(id, userID uuid.UUID, name string, prefs models.Preferences) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(workspaceRowColumns).AddRow(id, name, userID, prefs, now, now)
}

func TestWorkspaceService_Create(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	userID := uuid.New()
	wsID := uuid.New()

	mock.ExpectQuery(`INSERT INTO workspaces \(name, user_id\)`).
		WithArgs("Personal", userID).
		WillReturnRows(workspaceRow(wsID, userID, "Personal", nil))

	ws, err := svc.Create(context.Background(), "Personal", userID)

	require.NoError(t, err)
	assert.Equal(t, wsID, ws.ID)
	assert.Equal(t, userID, ws.UserID)
	assert.NotNil(t, ws.Preferences)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Authorize(t *testing.T) {
	owner := uuid.New()
	wsID := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		setup   func(pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name:   "owner",
			caller: owner,
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).WithArgs(wsID).
					WillReturnRows(workspaceRow(wsID, owner, "W", nil))
			},
		},
		{
			name:   "someone else",
			caller: uuid.New(),
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).WithArgs(wsID).
					WillReturnRows(workspaceRow(wsID, owner, "W", nil))
			},
			wantErr: ErrForbidden,
		},
		{
			name:   "missing",
			caller: owner,
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).WithArgs(wsID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrWorkspaceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := setupWorkspaceService(t)
			tt.setup(mock)

			ws, err := svc.Authorize(context.Background(), wsID, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ws)
			} else {
				require.NoError(t, err)
				assert.Equal(t, wsID, ws.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWorkspaceService_ListByUser(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(workspaceRowColumns).
		AddRow(uuid.New(), "One", userID, models.Preferences{}, now, now).
		AddRow(uuid.New(), "Two", userID, models.Preferences{}, now, now)
	mock.ExpectQuery(`SELECT .+ FROM workspaces\s+WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(rows)

	list, err := svc.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_ListByUser_Empty(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(workspaceRowColumns))

	list, err := svc.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestWorkspaceService_Update(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	wsID := uuid.New()

	mock.ExpectQuery(`UPDATE workspaces SET name`).
		WithArgs("Renamed", wsID).
		WillReturnRows(workspaceRow(wsID, uuid.New(), "Renamed", nil))
	mock.ExpectQuery(`UPDATE workspaces SET name`).
		WithArgs("Renamed", wsID).
		WillReturnError(pgx.ErrNoRows)

	ws, err := svc.Update(context.Background(), wsID, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", ws.Name)

	_, err = svc.Update(context.Background(), wsID, "Renamed")
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Delete(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	wsID := uuid.New()

	mock.ExpectExec(`DELETE FROM workspaces WHERE id`).WithArgs(wsID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM workspaces WHERE id`).WithArgs(wsID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM workspaces WHERE id`).WithArgs(wsID).WillReturnError(errors.New("boom"))

	ctx := context.Background()
	assert.NoError(t, svc.Delete(ctx, wsID))
	assert.ErrorIs(t, svc.Delete(ctx, wsID), ErrWorkspaceNotFound)
	assert.Error(t, svc.Delete(ctx, wsID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_UpdatePreferences_Merges(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	wsID := uuid.New()

	patch := models.Preferences{"itemsSort": json.RawMessage(`{"field":"createdAt","direction":"desc"}`)}
	merged := models.Preferences{
		"itemsSort": json.RawMessage(`{"field":"createdAt","direction":"desc"}`),
		"theme":     json.RawMessage(`"dark"`),
	}

	mock.ExpectQuery(`UPDATE workspaces\s+SET preferences = jsonb_strip_nulls\(preferences \|\| \$1::jsonb\)`).
		WithArgs(pgxmock.AnyArg(), wsID).
		WillReturnRows(pgxmock.NewRows([]string{"preferences"}).AddRow(merged))

	prefs, err := svc.UpdatePreferences(context.Background(), wsID, patch)

	require.NoError(t, err)
	assert.Contains(t, prefs, "theme")
	assert.Equal(t, &dto.ItemsSort{Field: dto.SortByCreatedAt, Direction: dto.SortDesc}, prefs.ItemsSort())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_UpdatePreferences_InvalidSort(t *testing.T) {
	svc, mock := setupWorkspaceService(t)

	tests := []json.RawMessage{
		json.RawMessage(`{"field":"size","direction":"asc"}`),
		json.RawMessage(`{"field":"name","direction":"up"}`),
		json.RawMessage(`"name"`),
	}
	for _, raw := range tests {
		_, err := svc.UpdatePreferences(context.Background(), uuid.New(), models.Preferences{"itemsSort": raw})
		assert.ErrorIs(t, err, ErrInvalidPreferences)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_UpdatePreferences_NotFound(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	wsID := uuid.New()

	mock.ExpectQuery(`UPDATE workspaces`).
		WithArgs(pgxmock.AnyArg(), wsID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.UpdatePreferences(context.Background(), wsID, models.Preferences{})

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}
