package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В проде здесь проверка Origin по списку доверенных доменов.
		return true
	},
}

// WebSocketHandler поднимает соединение для персональных уведомлений:
// решения по заявкам и подтверждения пожертвований.
type WebSocketHandler struct {
	hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs — GET /ws. Пользователь определяется из JWT (заголовок либо
// query-параметр token), комната — персональная.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP-ошибку клиенту.
		slog.Error("failed to upgrade websocket connection", slog.Int("user_id", userID), slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: realtime.UserRoom(userID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
