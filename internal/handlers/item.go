package handlers

import (
	"context"
	"strings"

	"github.com/dimitrije/notes/internal/middleware"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/internal/services"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ItemHandler struct {
	itemService ItemServiceInterface
	hub         HubInterface
}

func NewItemHandler(itemService ItemServiceInterface, hub HubInterface) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		hub:         hub,
	}
}

func (h *ItemHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	raw := c.QueryParam("workspaceId")
	if raw == "" {
		c.BadRequest("workspaceId is required")
		return
	}
	workspaceID, err := uuid.Parse(raw)
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	items, err := h.itemService.ListByWorkspace(context.Background(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "failed to get items")
		return
	}

	resp := dto.ItemsResponse{Items: make([]dto.Item, len(items))}
	for i := range items {
		resp.Items[i] = items[i].ToDTO()
	}
	_ = c.JSON(200, resp)
}

func (h *ItemHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.BadRequest("name is required")
		return
	}
	if req.WorkspaceID == "" {
		c.BadRequest("workspaceId is required")
		return
	}
	if req.Type == "" {
		c.BadRequest("type is required")
		return
	}
	if !req.Type.Valid() {
		c.BadRequest("type must be document or folder")
		return
	}
	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	in := services.CreateItemInput{
		WorkspaceID: workspaceID,
		Type:        req.Type,
		Name:        req.Name,
		ItemsIDs:    req.ItemsIDs,
	}
	if req.Content != nil {
		in.Content = *req.Content
	}

	item, err := h.itemService.Create(context.Background(), userID, in)
	if err != nil {
		respondError(c, err, "failed to create item")
		return
	}

	out := item.ToDTO()
	h.hub.BroadcastItemCreated(item.WorkspaceID, out)

	_ = c.JSON(201, out)
}

func (h *ItemHandler) Get(c *drift.Context) {
	item, ok := h.loadItem(c)
	if !ok {
		return
	}

	_ = c.JSON(200, item.ToDTO())
}

func (h *ItemHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.BadRequest("invalid item id")
		return
	}

	var req dto.UpdateItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		c.BadRequest("name cannot be empty")
		return
	}

	item, err := h.itemService.Update(context.Background(), itemID, userID, services.UpdateItemInput{
		Name:     req.Name,
		Content:  req.Content,
		ItemsIDs: req.ItemsIDs,
	})
	if err != nil {
		respondError(c, err, "failed to update item")
		return
	}

	out := item.ToDTO()
	h.hub.BroadcastItemUpdated(item.WorkspaceID, out)

	_ = c.JSON(200, out)
}

func (h *ItemHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.BadRequest("invalid item id")
		return
	}

	item, err := h.itemService.Delete(context.Background(), itemID, userID)
	if err != nil {
		respondError(c, err, "failed to delete item")
		return
	}

	h.hub.BroadcastItemDeleted(item.WorkspaceID, item.ID.String())

	_ = c.JSON(200, map[string]string{"message": "item deleted"})
}

func (h *ItemHandler) loadItem(c *drift.Context) (*models.Item, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return nil, false
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.BadRequest("invalid item id")
		return nil, false
	}

	item, err := h.itemService.Get(context.Background(), itemID, userID)
	if err != nil {
		respondError(c, err, "failed to get item")
		return nil, false
	}
	return item, true
}
