// Package realtime доставляет пользователям события платформы (решение по
// заявке, подтверждение пожертвования) по WebSocket. Каждый пользователь —
// своя комната.
package realtime

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"
)

const (
	// Типы сообщений, уходящих клиентам.
	EventApplicationReviewed = "APPLICATION_REVIEWED"
	EventDonationSettled     = "DONATION_SETTLED"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok {
				if _, okClient := clients[client]; okClient {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyUser отправляет событие во все соединения пользователя. Отсутствие
// подключённых клиентов — не ошибка: уведомления best-effort.
func (h *Hub) NotifyUser(userID int, eventType string, payload interface{}) {
	room := UserRoom(userID)
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(Message{Type: eventType, Payload: payload, RoomID: room})
	if err != nil {
		log.Printf("realtime: failed to marshal %s message for room %s: %v", eventType, room, err)
		return
	}

	for client := range clients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			// Канал клиента полон — пропускаем, соединение закроет пинг.
		}
		client.Mu.Unlock()
	}
}

// UserRoom строит имя комнаты для пользователя.
func UserRoom(userID int) string {
	return "user:" + strconv.Itoa(userID)
}
