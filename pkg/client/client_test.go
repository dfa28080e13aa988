package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithToken("test-token"))
}

func TestClient_ListItems(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/items", r.URL.Path)
		assert.Equal(t, "ws-1", r.URL.Query().Get("workspaceId"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"items":[
			{"id":"d1","type":"document","name":"Doc","userId":"u","workspaceId":"ws-1","content":"hi"},
			{"id":"f1","type":"folder","name":"Folder","userId":"u","workspaceId":"ws-1","itemsIds":["d1"]}
		]}`))
	})

	items, err := c.ListItems(context.Background(), "ws-1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, dto.ItemTypeDocument, items[0].Type)
	assert.Equal(t, "hi", items[0].Content)
	assert.Equal(t, []string{"d1"}, items[1].ItemsIDs)
}

func TestClient_ListItems_NullItems(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":null}`))
	})

	items, err := c.ListItems(context.Background(), "ws-1")

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_CreateItem(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/items", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Notes", body["name"])
		assert.Equal(t, "folder", body["type"])
		assert.Equal(t, "ws-1", body["workspaceId"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"f1","type":"folder","name":"Notes","userId":"u","workspaceId":"ws-1","itemsIds":[]}`))
	})

	item, err := c.CreateItem(context.Background(), dto.CreateItemRequest{
		Name:        "Notes",
		WorkspaceID: "ws-1",
		Type:        dto.ItemTypeFolder,
	})

	require.NoError(t, err)
	assert.Equal(t, "f1", item.ID)
	assert.Equal(t, []string{}, item.ItemsIDs)
}

func TestClient_CreateItem_RequestFailed(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to create item"}`))
	})

	_, err := c.CreateItem(context.Background(), dto.CreateItemRequest{Name: "x", Type: dto.ItemTypeDocument})

	require.Error(t, err)
	var rf *RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusInternalServerError, rf.Status)
	assert.Equal(t, "create document", rf.Op)
	assert.Equal(t, "failed to create document: 500 failed to create item", err.Error())
}

func TestClient_UpdateItem_SendsPartialBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/items/f1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"a", "b"}, body["itemsIds"])
		_, hasName := body["name"]
		assert.False(t, hasName)
		_, hasContent := body["content"]
		assert.False(t, hasContent)

		_, _ = w.Write([]byte(`{"id":"f1","type":"folder","name":"F","userId":"u","workspaceId":"w","itemsIds":["a","b"]}`))
	})

	ids := []string{"a", "b"}
	item, err := c.UpdateItem(context.Background(), "f1", dto.UpdateItemRequest{ItemsIDs: &ids})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, item.ItemsIDs)
}

func TestClient_DeleteItem(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/items/d1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteItem(context.Background(), "d1")

	assert.NoError(t, err)
}

func TestClient_DeleteItem_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Item not found", http.StatusNotFound)
	})

	err := c.DeleteItem(context.Background(), "d1")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Item not found")
}

func TestClient_Preferences(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/workspaces/ws-1/preferences", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"itemsSort":{"field":"updatedAt","direction":"desc"}}`))
		case http.MethodPut:
			var prefs dto.Preferences
			require.NoError(t, json.NewDecoder(r.Body).Decode(&prefs))
			require.NotNil(t, prefs.ItemsSort)
			assert.Equal(t, dto.SortByCreatedAt, prefs.ItemsSort.Field)
			_ = json.NewEncoder(w).Encode(prefs)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	prefs, err := c.GetPreferences(context.Background(), "ws-1")
	require.NoError(t, err)
	require.NotNil(t, prefs.ItemsSort)
	assert.Equal(t, dto.ItemsSort{Field: dto.SortByUpdatedAt, Direction: dto.SortDesc}, *prefs.ItemsSort)

	saved, err := c.UpdatePreferences(context.Background(), "ws-1", dto.Preferences{
		ItemsSort: &dto.ItemsSort{Field: dto.SortByCreatedAt, Direction: dto.SortAsc},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.SortByCreatedAt, saved.ItemsSort.Field)
}

func TestClient_SignInStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/signin":
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","expires_in":900}`))
		case "/api/v1/workspaces":
			assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"workspaces":[{"id":"w1","name":"Personal","userId":"u1"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	tokens, err := c.SignIn(context.Background(), "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "refresh", tokens.RefreshToken)
	assert.Equal(t, "access", c.Token())

	workspaces, err := c.ListWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "Personal", workspaces[0].Name)
}

func TestClient_Logout(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		var body dto.RefreshTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh", body.RefreshToken)
		_, _ = w.Write([]byte(`{"message":"logged out"}`))
	})

	require.NoError(t, c.Logout(context.Background(), "refresh"))
	assert.Empty(t, c.Token())
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsValidation(&RequestFailedError{Status: http.StatusBadRequest}))
	assert.True(t, IsUnauthorized(&RequestFailedError{Status: http.StatusUnauthorized}))
	assert.True(t, IsForbidden(&RequestFailedError{Status: http.StatusForbidden}))
	assert.False(t, IsNotFound(assert.AnError))
	assert.Equal(t, 0, StatusOf(nil))
}
