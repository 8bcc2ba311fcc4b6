// Package network - api.go
// REST bridge for renderers and moderators: roster reads, dialogue lines
// and manual event triggers.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/engine"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// APIBridge handles the REST endpoints of the office server.
type APIBridge struct {
	store   *engine.StateStore
	movers  map[string]*engine.Mover
	trigger Trigger
	rng     engine.Rand
	logger  *logger.Logger
}

// NewAPIBridge creates the REST handler set.
func NewAPIBridge(store *engine.StateStore, movers map[string]*engine.Mover, trigger Trigger, rng engine.Rand, log *logger.Logger) *APIBridge {
	return &APIBridge{
		store:   store,
		movers:  movers,
		trigger: trigger,
		rng:     rng,
		logger:  log,
	}
}

// AgentView is the public read model of one agent.
type AgentView struct {
	agent.Profile
	State    agent.State      `json:"state"`
	Position grid.Position    `json:"position"`
	Screen   grid.ScreenPoint `json:"screen"`
	IsMoving bool             `json:"is_moving"`
}

// HandleAgents returns every agent with its live state and position.
// GET /api/agents
func (ab *APIBridge) HandleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ab.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	views := make([]AgentView, 0, len(agent.Roster))
	for _, p := range agent.Roster {
		view := AgentView{Profile: p, Position: p.Home}
		if st, ok := ab.store.GetState(p.ID); ok {
			view.State = st
		}
		if m, ok := ab.movers[p.ID]; ok {
			view.Position = m.Position()
			view.IsMoving = m.IsMoving()
		}
		view.Screen = view.Position.ToScreen()
		views = append(views, view)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"agents":       views,
	})
}

// DialogueResponse is one spoken line with the agent's status card.
type DialogueResponse struct {
	AgentID string `json:"agent_id"`
	State   string `json:"state"`
	Line    string `json:"line"`
	Status  string `json:"status"`
}

// HandleDialogue returns a random dialogue line for one agent.
// GET /api/agents/{id}/dialogue
func (ab *APIBridge) HandleDialogue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ab.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/agents/"), "/dialogue")
	if agent.Lookup(id) == nil {
		ab.jsonError(w, "Unknown agent: "+id, http.StatusNotFound)
		return
	}

	state, line := agent.RandomDialogue(id, ab.rng.Intn)
	response := DialogueResponse{
		AgentID: id,
		State:   string(state),
		Line:    line,
		Status:  agent.StatusInfo(id),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// TriggerRequest is the payload for forcing an ambient event.
type TriggerRequest struct {
	Kind string `json:"kind"`
}

// HandleTriggerEvent forces one ambient event to run now.
// POST /api/trigger-event
func (ab *APIBridge) HandleTriggerEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ab.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ab.jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	kind, ok := engine.ParseEventKind(req.Kind)
	if !ok {
		ab.jsonError(w, "Unknown event kind: "+req.Kind, http.StatusBadRequest)
		return
	}

	if ab.trigger.InFlight() {
		ab.jsonError(w, "An event is already in flight", http.StatusConflict)
		return
	}

	// The sequence takes many seconds to play out; respond immediately and
	// let it run.
	go func() {
		if err := ab.trigger.TriggerEvent(context.Background(), kind); err != nil && !errors.Is(err, engine.ErrEventInFlight) {
			ab.logger.Error("Manual %s event failed: %v", kind, err)
		}
	}()

	ab.logger.Event("API_TRIGGER", "", "Requested "+req.Kind+" event")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "kind": req.Kind})
}

func (ab *APIBridge) jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
