package handlers

import (
	"context"

	"github.com/dimitrije/notes/internal/middleware"
	"github.com/dimitrije/notes/internal/sse"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SSEHandler struct {
	hub              HubInterface
	workspaceService WorkspaceServiceInterface
}

func NewSSEHandler(hub HubInterface, workspaceService WorkspaceServiceInterface) *SSEHandler {
	return &SSEHandler{
		hub:              hub,
		workspaceService: workspaceService,
	}
}

// Connect streams the change feed of one workspace until the client goes away.
func (h *SSEHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	if _, err := h.workspaceService.Authorize(context.Background(), workspaceID, userID); err != nil {
		respondError(c, err, "failed to get workspace")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:          clientID,
		UserID:      userID,
		WorkspaceID: workspaceID,
		Send:        make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":        "connected",
		"clientId":    clientID,
		"workspaceId": workspaceID.String(),
	}, "system", ""); err != nil {
		return
	}

	done := c.Request.Context().Done()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
