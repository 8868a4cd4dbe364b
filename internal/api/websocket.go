package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/CedarCite/core/passage"
	"github.com/FocuswithJustin/CedarCite/internal/logging"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
	wsMaxMessage = 64 * 1024
)

// WSParseMessage is one parse request sent over the socket.
type WSParseMessage struct {
	Passage string `json:"passage"`
	Clean   bool   `json:"clean,omitempty"`
}

// WSResult is the reply to one WSParseMessage.
type WSResult struct {
	Type      string         `json:"type"` // "result" or "error"
	Result    *PassageResult `json:"result,omitempty"`
	Message   string         `json:"message,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// handleWebSocket upgrades the connection and serves parse requests on
// it until the client goes away. Each message is independent; there is
// no shared state between connections.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.originAllowed(origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logging.WebSocketEvent("client_connected", "remote_addr", r.RemoteAddr)
	defer logging.WebSocketEvent("client_disconnected", "remote_addr", r.RemoteAddr)

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, done)

	for {
		var msg WSParseMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Error("websocket read failed", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		reply := s.parseOverSocket(msg)
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			logging.Error("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) parseOverSocket(msg WSParseMessage) WSResult {
	now := time.Now().UTC().Format(time.RFC3339)
	if msg.Passage == "" {
		return WSResult{
			Type:      "error",
			Message:   "The passage field is required",
			Timestamp: now,
		}
	}
	books := passage.ParseBooks(msg.Passage, s.canon)
	result := BuildPassageResult(msg.Passage, books, msg.Clean)
	return WSResult{
		Type:      "result",
		Result:    &result,
		Timestamp: now,
	}
}

func (s *Server) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// WriteControl is safe to call concurrently with WriteJSON
			// and carries its own deadline.
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
