// Package network - replay.go
// Journal replay endpoint - JSON export of everything that happened on the
// floor. Lets a renderer catch up after connecting late and gives
// moderators an audit view.
package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// ReplayHandler provides the journal replay API.
type ReplayHandler struct {
	eventLog *events.Log
	logger   *logger.Logger
}

// NewReplayHandler creates a new journal replay handler.
func NewReplayHandler(el *events.Log, log *logger.Logger) *ReplayHandler {
	return &ReplayHandler{
		eventLog: el,
		logger:   log,
	}
}

// ReplayResponse is the API response for a journal replay.
type ReplayResponse struct {
	TotalEvents int                  `json:"total_events"`
	FilteredBy  string               `json:"filtered_by,omitempty"`
	GeneratedAt string               `json:"generated_at"`
	Events      []events.OfficeEvent `json:"events"`
}

// HandleReplay returns the journal, optionally filtered.
// GET /api/journal?type=OFFICE_EVENT_STARTED&agent=coder&limit=100
func (rh *ReplayHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventType := r.URL.Query().Get("type")
	agentID := r.URL.Query().Get("agent")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			rh.jsonError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	filterDesc := ""
	if eventType != "" {
		filterDesc = "type " + eventType
	}
	if agentID != "" {
		if filterDesc != "" {
			filterDesc += ", "
		}
		filterDesc += "agent " + agentID
	}

	var filtered []events.OfficeEvent
	for _, e := range rh.eventLog.Replay() {
		if eventType != "" && string(e.Type) != eventType {
			continue
		}
		if agentID != "" && e.AgentID != agentID {
			continue
		}
		filtered = append(filtered, e)
	}

	// The newest events matter most; trim from the front.
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}

	response := ReplayResponse{
		TotalEvents: len(filtered),
		FilteredBy:  filterDesc,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Events:      filtered,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (rh *ReplayHandler) jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
