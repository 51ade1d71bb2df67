package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format. The voice frontend
// keeps one socket open per tab instead of POSTing each utterance.
type wsRequest struct {
	Type      string `json:"type"`       // "message"
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format: the chat payload
// plus the session identity assigned to the connection.
type wsResponse struct {
	Type            string   `json:"type"` // "response" or "error"
	SessionID       string   `json:"session_id"`
	Reply           string   `json:"reply,omitempty"`
	DetectedLang    string   `json:"detectedLang,omitempty"`
	TranslatedQuery string   `json:"translatedQuery,omitempty"`
	UserLocation    *string  `json:"userLocation,omitempty"`
	NASADataUsed    []string `json:"nasaDataUsed,omitempty"`
	Error           string   `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "", "invalid message format")
			continue
		}

		if req.Content == "" {
			s.sendWSError(conn, req.SessionID, "content is required")
			continue
		}

		switch req.Type {
		case "message":
			s.handleWSMessage(conn, r, req)
		default:
			s.sendWSError(conn, req.SessionID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) handleWSMessage(conn *websocket.Conn, r *http.Request, req wsRequest) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	resp, err := s.chatter.Chat(r.Context(), sessionID, req.Content)
	if err != nil {
		s.sendWSError(conn, sessionID, "processing failed: "+err.Error())
		return
	}

	out := wsResponse{
		Type:            "response",
		SessionID:       sessionID,
		Reply:           resp.Reply,
		DetectedLang:    resp.DetectedLang,
		TranslatedQuery: resp.TranslatedQuery,
		UserLocation:    resp.UserLocation,
		NASADataUsed:    resp.NASADataUsed,
	}
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, sessionID, message string) {
	resp := wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Error:     message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
