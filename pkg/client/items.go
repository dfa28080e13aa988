package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dimitrije/notes/pkg/dto"
)

func (c *Client) ListItems(ctx context.Context, workspaceID string) ([]dto.Item, error) {
	var resp dto.ItemsResponse
	query := url.Values{"workspaceId": {workspaceID}}
	if err := c.do(ctx, "fetch items", http.MethodGet, "/items", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []dto.Item{}
	}
	return resp.Items, nil
}

func (c *Client) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.Item, error) {
	op := "create document"
	if req.Type == dto.ItemTypeFolder {
		op = "create folder"
	}

	var item dto.Item
	if err := c.do(ctx, op, http.MethodPost, "/items", nil, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*dto.Item, error) {
	var item dto.Item
	if err := c.do(ctx, "fetch item", http.MethodGet, "/items/"+url.PathEscape(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.Item, error) {
	var item dto.Item
	if err := c.do(ctx, "update item", http.MethodPut, "/items/"+url.PathEscape(id), nil, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, "delete item", http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil, nil)
}
