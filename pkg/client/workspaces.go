package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dimitrije/notes/pkg/dto"
)

func (c *Client) ListWorkspaces(ctx context.Context) ([]dto.Workspace, error) {
	var resp dto.WorkspacesResponse
	if err := c.do(ctx, "fetch workspaces", http.MethodGet, "/workspaces", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Workspaces == nil {
		resp.Workspaces = []dto.Workspace{}
	}
	return resp.Workspaces, nil
}

func (c *Client) CreateWorkspace(ctx context.Context, name string) (*dto.Workspace, error) {
	var ws dto.Workspace
	req := dto.CreateWorkspaceRequest{Name: name}
	if err := c.do(ctx, "create workspace", http.MethodPost, "/workspaces", nil, req, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (c *Client) UpdateWorkspace(ctx context.Context, id, name string) (*dto.Workspace, error) {
	var ws dto.Workspace
	req := dto.UpdateWorkspaceRequest{Name: name}
	if err := c.do(ctx, "update workspace", http.MethodPut, "/workspaces/"+url.PathEscape(id), nil, req, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	return c.do(ctx, "delete workspace", http.MethodDelete, "/workspaces/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) GetPreferences(ctx context.Context, workspaceID string) (*dto.Preferences, error) {
	var prefs dto.Preferences
	path := "/workspaces/" + url.PathEscape(workspaceID) + "/preferences"
	if err := c.do(ctx, "fetch preferences", http.MethodGet, path, nil, nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, workspaceID string, prefs dto.Preferences) (*dto.Preferences, error) {
	var out dto.Preferences
	path := "/workspaces/" + url.PathEscape(workspaceID) + "/preferences"
	if err := c.do(ctx, "save sort preferences", http.MethodPut, path, nil, prefs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
