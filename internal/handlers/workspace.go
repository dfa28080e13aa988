package handlers

import (
	"context"
	"strings"

	"github.com/dimitrije/notes/internal/middleware"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	hub              HubInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, hub HubInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		hub:              hub,
	}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.BadRequest("name is required")
		return
	}

	workspace, err := h.workspaceService.Create(context.Background(), req.Name, userID)
	if err != nil {
		respondError(c, err, "failed to create workspace")
		return
	}

	_ = c.JSON(201, workspace.ToDTO())
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaces, err := h.workspaceService.ListByUser(context.Background(), userID)
	if err != nil {
		respondError(c, err, "failed to get workspaces")
		return
	}

	resp := dto.WorkspacesResponse{Workspaces: make([]dto.Workspace, len(workspaces))}
	for i := range workspaces {
		resp.Workspaces[i] = workspaces[i].ToDTO()
	}
	_ = c.JSON(200, resp)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
	workspace, ok := h.authorize(c)
	if !ok {
		return
	}

	_ = c.JSON(200, workspace.ToDTO())
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
	workspace, ok := h.authorize(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.BadRequest("name is required")
		return
	}

	updated, err := h.workspaceService.Update(context.Background(), workspace.ID, req.Name)
	if err != nil {
		respondError(c, err, "failed to update workspace")
		return
	}

	out := updated.ToDTO()
	h.hub.BroadcastWorkspaceUpdated(out)

	_ = c.JSON(200, out)
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
	workspace, ok := h.authorize(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(context.Background(), workspace.ID); err != nil {
		respondError(c, err, "failed to delete workspace")
		return
	}

	h.hub.BroadcastWorkspaceDeleted(workspace.ID)

	_ = c.JSON(200, map[string]string{"message": "workspace deleted"})
}

// GetPreferences returns the stored preferences document, including keys this
// server does not interpret.
func (h *WorkspaceHandler) GetPreferences(c *drift.Context) {
	workspace, ok := h.authorize(c)
	if !ok {
		return
	}

	prefs := workspace.Preferences
	if prefs == nil {
		prefs = models.Preferences{}
	}
	_ = c.JSON(200, prefs)
}

// UpdatePreferences merges the posted keys into the stored preferences.
func (h *WorkspaceHandler) UpdatePreferences(c *drift.Context) {
	workspace, ok := h.authorize(c)
	if !ok {
		return
	}

	var patch models.Preferences
	if err := c.BindJSON(&patch); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	prefs, err := h.workspaceService.UpdatePreferences(context.Background(), workspace.ID, patch)
	if err != nil {
		respondError(c, err, "failed to update preferences")
		return
	}

	h.hub.BroadcastPreferencesUpdated(workspace.ID, dto.Preferences{ItemsSort: prefs.ItemsSort()})

	_ = c.JSON(200, prefs)
}

func (h *WorkspaceHandler) authorize(c *drift.Context) (*models.Workspace, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return nil, false
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return nil, false
	}

	workspace, err := h.workspaceService.Authorize(context.Background(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "failed to get workspace")
		return nil, false
	}
	return workspace, true
}
