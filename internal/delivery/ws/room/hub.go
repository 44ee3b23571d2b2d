package ws_room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

const (
	EventMemberJoined    = "MEMBER_JOINED"
	EventVoteCast        = "VOTE_CAST"
	EventQueueCompleted  = "QUEUE_COMPLETED"
	EventMatchFound      = "MATCH_FOUND"
	EventContentInjected = "CONTENT_INJECTED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type roomEvent struct {
	roomID model.RoomID
	event  Event
}

// Hub fans room events out to the websocket clients subscribed to that
// room. It carries no business dependencies; callers hand it finished
// payloads. Clients that stop draining their send channel are dropped.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[model.RoomID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomEvent
	mu         sync.RWMutex

	logger *slog.Logger
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[model.RoomID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomEvent),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case roomEvent := <-h.broadcast:
			h.broadcastToRoom(roomEvent.roomID, roomEvent.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.rooms[client.roomID]; !exists {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true

	h.logger.Info("client registered",
		"user_id", client.userID,
		"room", client.roomID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if roomClients, exists := h.rooms[client.roomID]; exists {
			delete(roomClients, client)
			if len(roomClients) == 0 {
				delete(h.rooms, client.roomID)
			}
		}
	}

	h.logger.Info("client unregistered",
		"user_id", client.userID,
		"room", client.roomID)
}

func (h *Hub) broadcastToRoom(roomID model.RoomID, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if roomClients, exists := h.rooms[roomID]; exists {
		for client := range roomClients {
			select {
			case client.send <- event:
			default:
				// Dropped clients leave the registry here so a later
				// unregister cannot close the channel twice.
				delete(h.clients, client)
				close(client.send)
				delete(roomClients, client)
			}
		}
	}
}

func (h *Hub) NotifyMemberJoined(roomID model.RoomID, userID uuid.UUID) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventMemberJoined,
			Payload: map[string]interface{}{
				"room_id": string(roomID),
				"user_id": userID.String(),
			},
		},
	}
}

func (h *Hub) NotifyVoteCast(roomID model.RoomID, userID uuid.UUID, mediaID uuid.UUID, voteType model.VoteType) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventVoteCast,
			Payload: map[string]interface{}{
				"room_id":   string(roomID),
				"user_id":   userID.String(),
				"media_id":  mediaID.String(),
				"vote_type": voteType,
			},
		},
	}
}

func (h *Hub) NotifyQueueCompleted(roomID model.RoomID, userID uuid.UUID) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventQueueCompleted,
			Payload: map[string]interface{}{
				"room_id": string(roomID),
				"user_id": userID.String(),
			},
		},
	}
}

func (h *Hub) NotifyMatchFound(roomID model.RoomID, match model.Match) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventMatchFound,
			Payload: map[string]interface{}{
				"room_id":    string(roomID),
				"media_id":   match.MediaID.String(),
				"votes":      match.Votes,
				"matched_at": match.MatchedAt.Unix(),
				"timestamp":  time.Now().Unix(),
			},
		},
	}

	h.logger.Info("match notification sent",
		"room", roomID,
		"media_id", match.MediaID.String())
}

func (h *Hub) NotifyContentInjected(roomID model.RoomID, mediaIDs []uuid.UUID) {
	ids := make([]string, len(mediaIDs))
	for i, id := range mediaIDs {
		ids[i] = id.String()
	}

	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventContentInjected,
			Payload: map[string]interface{}{
				"room_id":   string(roomID),
				"media_ids": ids,
				"count":     len(ids),
			},
		},
	}
}
