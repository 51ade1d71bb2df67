package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/rootsource-ai/rootsource/internal/geo"
)

// defaultSession is used when the caller supplies no session identity,
// preserving the original shared-conversation behavior for minimal clients.
const defaultSession = "default"

// chatRequest is the POST /chat body. sessionId is optional; the
// X-Session-ID header is the fallback.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"app":    AppName,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		// The only non-200 chat outcome: a contract violation, not a
		// degraded-data condition.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-ID")
	}
	if sessionID == "" {
		sessionID = defaultSession
	}

	resp, err := s.chatter.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		log.Printf("server: chat failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLocationDetect(w http.ResponseWriter, r *http.Request) {
	if s.detector == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Location detection not available"})
		return
	}

	loc, err := s.detector.Detect(r.Context())
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"method":   "ip_geolocation",
			"location": loc,
		})
		return
	}

	log.Printf("server: location detection failed, using regional fallback: %v", err)
	fallback := geo.FallbackLocation("BD")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  false,
		"fallback": true,
		"method":   "regional_fallback",
		"location": fallback,
		"note":     "Using South Asian regional fallback for optimal agricultural recommendations",
	})
}

// countryCodes maps the country names the frontend sends to fallback-table
// codes.
var countryCodes = map[string]string{
	"bangladesh":    "BD",
	"india":         "IN",
	"pakistan":      "PK",
	"sri lanka":     "LK",
	"nepal":         "NP",
	"united states": "US",
	"brazil":        "BR",
	"australia":     "AU",
}

func (s *Server) handleLocationSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		City    string `json:"city"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "City name is required",
			"success": false,
		})
		return
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = "Bangladesh"
	}

	loc := geo.FallbackLocation(countryCodes[strings.ToLower(country)])
	loc.City = city
	loc.Country = country

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"location": loc,
		"message":  "Location manually set to " + loc.Label(),
		"method":   "manual_override",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}
