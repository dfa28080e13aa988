package sse

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
)

const (
	EventItemCreated        = "item_created"
	EventItemUpdated        = "item_updated"
	EventItemDeleted        = "item_deleted"
	EventPreferencesUpdated = "preferences_updated"
	EventWorkspaceUpdated   = "workspace_updated"
	EventWorkspaceDeleted   = "workspace_deleted"
)

type Event struct {
	Type        string      `json:"type"`
	WorkspaceID uuid.UUID   `json:"workspaceId"`
	Data        interface{} `json:"data,omitempty"`
}

type ItemDeletedData struct {
	ID string `json:"id"`
}

type Client struct {
	ID          string
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
	Send        chan []byte
}

// Hub fans workspace events out to the SSE clients watching that workspace.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled. Every
// client still connected at that point has its Send channel closed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("Failed to encode %s event: %v", event.Type, err)
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients {
				if client.WorkspaceID != event.WorkspaceID {
					continue
				}
				select {
				case client.Send <- data:
				default:
					// slow consumer, drop
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds client. If the hub has stopped, client.Send is closed instead.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("Dropping %s event for workspace %s: broadcast queue full", event.Type, event.WorkspaceID)
	}
}

func (h *Hub) BroadcastItemCreated(workspaceID uuid.UUID, item dto.Item) {
	h.publish(Event{Type: EventItemCreated, WorkspaceID: workspaceID, Data: item})
}

func (h *Hub) BroadcastItemUpdated(workspaceID uuid.UUID, item dto.Item) {
	h.publish(Event{Type: EventItemUpdated, WorkspaceID: workspaceID, Data: item})
}

func (h *Hub) BroadcastItemDeleted(workspaceID uuid.UUID, itemID string) {
	h.publish(Event{Type: EventItemDeleted, WorkspaceID: workspaceID, Data: ItemDeletedData{ID: itemID}})
}

func (h *Hub) BroadcastPreferencesUpdated(workspaceID uuid.UUID, prefs dto.Preferences) {
	h.publish(Event{Type: EventPreferencesUpdated, WorkspaceID: workspaceID, Data: prefs})
}

func (h *Hub) BroadcastWorkspaceUpdated(workspace dto.Workspace) {
	id, err := uuid.Parse(workspace.ID)
	if err != nil {
		return
	}
	h.publish(Event{Type: EventWorkspaceUpdated, WorkspaceID: id, Data: workspace})
}

func (h *Hub) BroadcastWorkspaceDeleted(workspaceID uuid.UUID) {
	h.publish(Event{Type: EventWorkspaceDeleted, WorkspaceID: workspaceID})
}
