package services

import (
	"context"
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

var itemRowColumns = []string{
	"id", "workspace_id", "user_id", "type", "name", "content", "items_ids", "created_at", "updated_at",
}

func setupItemService(t *testing.T) (*ItemService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewItemService(db, NewWorkspaceService(db)), mock
}

func expectWorkspace(mock pgxmock.PgxPoolIface, wsID, owner uuid.UUID) {
	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(wsID).
		WillReturnRows(workspaceRow(wsID, owner, "W", models.Preferences{}))
}

func itemRow(item models.Item) *pgxmock.Rows {
	return pgxmock.NewRows(itemRowColumns).AddRow(
		item.ID, item.WorkspaceID, item.UserID, string(item.Type), item.Name,
		item.Content, item.ItemsIDs, item.CreatedAt, item.UpdatedAt,
	)
}

func TestItemService_ListByWorkspace(t *testing.T) {
	svc, mock := setupItemService(t)
	userID := uuid.New()
	wsID := uuid.New()
	now := time.Now()

	expectWorkspace(mock, wsID, userID)
	rows := pgxmock.NewRows(itemRowColumns).
		AddRow(uuid.New(), wsID, userID, "document", "Doc", "hello", []string{}, now, now).
		AddRow(uuid.New(), wsID, userID, "folder", "Folder", "", []string{"a", "b"}, now, now)
	mock.ExpectQuery(`SELECT .+ FROM items\s+WHERE workspace_id = \$1 AND user_id = \$2`).
		WithArgs(wsID, userID).
		WillReturnRows(rows)

	items, err := svc.ListByWorkspace(context.Background(), wsID, userID)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, dto.ItemTypeDocument, items[0].Type)
	assert.Equal(t, []string{"a", "b"}, items[1].ItemsIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_ListByWorkspace_ForeignWorkspace(t *testing.T) {
	svc, mock := setupItemService(t)
	wsID := uuid.New()

	expectWorkspace(mock, wsID, uuid.New())

	_, err := svc.ListByWorkspace(context.Background(), wsID, uuid.New())

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_Create(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()

	tests := []struct {
		name         string
		in           CreateItemInput
		wantContent  string
		wantItemsIDs []string
	}{
		{
			name:         "document keeps content",
			in:           CreateItemInput{WorkspaceID: wsID, Type: dto.ItemTypeDocument, Name: "Doc", Content: "body", ItemsIDs: []string{"x"}},
			wantContent:  "body",
			wantItemsIDs: []string{},
		},
		{
			name:         "folder defaults to no children",
			in:           CreateItemInput{WorkspaceID: wsID, Type: dto.ItemTypeFolder, Name: "Folder", Content: "ignored"},
			wantContent:  "",
			wantItemsIDs: []string{},
		},
		{
			name:         "folder keeps given children",
			in:           CreateItemInput{WorkspaceID: wsID, Type: dto.ItemTypeFolder, Name: "Folder", ItemsIDs: []string{"a"}},
			wantContent:  "",
			wantItemsIDs: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := setupItemService(t)
			now := time.Now()
			expectWorkspace(mock, wsID, userID)
			mock.ExpectQuery(`INSERT INTO items`).
				WithArgs(wsID, userID, string(tt.in.Type), tt.in.Name, tt.wantContent, tt.wantItemsIDs).
				WillReturnRows(itemRow(models.Item{
					ID: uuid.New(), WorkspaceID: wsID, UserID: userID, Type: tt.in.Type, Name: tt.in.Name,
					Content: tt.wantContent, ItemsIDs: tt.wantItemsIDs, CreatedAt: now, UpdatedAt: now,
				}))

			item, err := svc.Create(context.Background(), userID, tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.in.Type, item.Type)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestItemService_Create_Validation(t *testing.T) {
	svc, mock := setupItemService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Create(ctx, userID, CreateItemInput{WorkspaceID: uuid.New(), Type: dto.ItemTypeDocument, Name: " "})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Create(ctx, userID, CreateItemInput{WorkspaceID: uuid.New(), Type: "note", Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidItemType)

	wsID := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).WithArgs(wsID).WillReturnError(pgx.ErrNoRows)
	_, err = svc.Create(ctx, userID, CreateItemInput{WorkspaceID: wsID, Type: dto.ItemTypeDocument, Name: "x"})
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_Get(t *testing.T) {
	owner := uuid.New()
	item := models.Item{ID: uuid.New(), WorkspaceID: uuid.New(), UserID: owner, Type: dto.ItemTypeDocument, Name: "Doc", ItemsIDs: []string{}}

	tests := []struct {
		name    string
		caller  uuid.UUID
		rows    *pgxmock.Rows
		err     error
		wantErr error
	}{
		{name: "owner", caller: owner, rows: itemRow(item)},
		{name: "other user", caller: uuid.New(), rows: itemRow(item), wantErr: ErrForbidden},
		{name: "missing", caller: owner, err: pgx.ErrNoRows, wantErr: ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := setupItemService(t)
			q := mock.ExpectQuery(`SELECT .+ FROM items WHERE id`).WithArgs(item.ID)
			if tt.rows != nil {
				q.WillReturnRows(tt.rows)
			} else {
				q.WillReturnError(tt.err)
			}

			got, err := svc.Get(context.Background(), item.ID, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, item.ID, got.ID)
		})
	}
}

func TestItemService_Update_Folder(t *testing.T) {
	svc, mock := setupItemService(t)
	owner := uuid.New()
	folder := models.Item{ID: uuid.New(), WorkspaceID: uuid.New(), UserID: owner, Type: dto.ItemTypeFolder, Name: "F", ItemsIDs: []string{"a"}}
	ids := []string{"a", "b"}
	content := "ignored for folders"

	mock.ExpectQuery(`SELECT .+ FROM items WHERE id`).WithArgs(folder.ID).WillReturnRows(itemRow(folder))
	updated := folder
	updated.ItemsIDs = ids
	mock.ExpectQuery(`UPDATE items SET name = \$1, content = \$2, items_ids = \$3`).
		WithArgs("F", "", ids, folder.ID).
		WillReturnRows(itemRow(updated))

	item, err := svc.Update(context.Background(), folder.ID, owner, UpdateItemInput{ItemsIDs: &ids, Content: &content})

	require.NoError(t, err)
	assert.Equal(t, ids, item.ItemsIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_Update_Document(t *testing.T) {
	svc, mock := setupItemService(t)
	owner := uuid.New()
	doc := models.Item{ID: uuid.New(), WorkspaceID: uuid.New(), UserID: owner, Type: dto.ItemTypeDocument, Name: "D", Content: "old", ItemsIDs: []string{}}
	name := "Renamed"
	content := "new"
	ids := []string{"x"}

	mock.ExpectQuery(`SELECT .+ FROM items WHERE id`).WithArgs(doc.ID).WillReturnRows(itemRow(doc))
	updated := doc
	updated.Name = name
	updated.Content = content
	mock.ExpectQuery(`UPDATE items SET`).
		WithArgs("Renamed", "new", []string{}, doc.ID).
		WillReturnRows(itemRow(updated))

	item, err := svc.Update(context.Background(), doc.ID, owner, UpdateItemInput{Name: &name, Content: &content, ItemsIDs: &ids})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", item.Name)
	assert.Equal(t, "new", item.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_Update_EmptyName(t *testing.T) {
	svc, mock := setupItemService(t)
	name := ""

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateItemInput{Name: &name})

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_Delete(t *testing.T) {
	svc, mock := setupItemService(t)
	owner := uuid.New()
	doc := models.Item{ID: uuid.New(), WorkspaceID: uuid.New(), UserID: owner, Type: dto.ItemTypeDocument, Name: "D", ItemsIDs: []string{}}

	mock.ExpectQuery(`SELECT .+ FROM items WHERE id`).WithArgs(doc.ID).WillReturnRows(itemRow(doc))
	mock.ExpectExec(`DELETE FROM items WHERE id`).WithArgs(doc.ID).WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := svc.Delete(context.Background(), doc.ID, owner)

	require.NoError(t, err)
	assert.Equal(t, doc.WorkspaceID, deleted.WorkspaceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemService_Delete_Failure(t *testing.T) {
	svc, mock := setupItemService(t)
	owner := uuid.New()
	doc := models.Item{ID: uuid.New(), WorkspaceID: uuid.New(), UserID: owner, Type: dto.ItemTypeDocument, Name: "D", ItemsIDs: []string{}}

	mock.ExpectQuery(`SELECT .+ FROM items WHERE id`).WithArgs(doc.ID).WillReturnRows(itemRow(doc))
	mock.ExpectExec(`DELETE FROM items WHERE id`).WithArgs(doc.ID).WillReturnError(errors.New("boom"))

	_, err := svc.Delete(context.Background(), doc.ID, owner)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrItemNotFound)
}
