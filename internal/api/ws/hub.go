// Package ws pushes state snapshots to the counter UI over websockets.
// Every state-changing operation publishes the full snapshot; the UI is a
// pure function of the last message it received.
package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kedaipos/counter/internal/core/ports"
)

// Event is a single websocket message.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// sessionEvent routes an event to one session's subscribers.
type sessionEvent struct {
	SessionID uuid.UUID
	Event     Event
}

// Hub maintains the set of active clients, grouped per session, and
// broadcasts snapshots to them. All room state is owned by the Run loop;
// everything else talks to it through the channels.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *sessionEvent

	log zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *sessionEvent, 256),
		log:        log,
	}
}

// Run starts the hub's main loop. Call as a goroutine: go hub.Run().
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.rooms[client.sessionID] == nil {
				h.rooms[client.sessionID] = make(map[*Client]bool)
			}
			h.rooms[client.sessionID][client] = true

		case client := <-h.unregister:
			if clients, ok := h.rooms[client.sessionID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.sessionID)
					}
				}
			}

		case event := <-h.broadcast:
			clients := h.rooms[event.SessionID]

			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Subscriber's buffer is full; drop it.
					close(client.send)
					delete(h.rooms[event.SessionID], client)
					if len(h.rooms[event.SessionID]) == 0 {
						delete(h.rooms, event.SessionID)
					}
				}
			}
		}
	}
}

// BroadcastToSession sends an event to all clients of one session.
func (h *Hub) BroadcastToSession(sessionID uuid.UUID, event Event) {
	h.broadcast <- &sessionEvent{SessionID: sessionID, Event: event}
}

// Notifier adapts the hub to the flow controller's notification port.
type Notifier struct {
	hub *Hub
	log zerolog.Logger
}

func NewNotifier(hub *Hub, log zerolog.Logger) *Notifier {
	return &Notifier{hub: hub, log: log}
}

// Publish pushes a state snapshot to the session's subscribers.
func (n *Notifier) Publish(sessionID uuid.UUID, snapshot ports.StateSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		n.log.Error().Err(err).Msg("failed to encode state snapshot")
		return
	}
	n.hub.BroadcastToSession(sessionID, Event{Type: "state", Payload: payload})
}
