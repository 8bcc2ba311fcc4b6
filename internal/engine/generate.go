package engine

import (
	"fmt"
	"strings"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"
)

// EventKind names one of the four scripted ambient events.
type EventKind string

const (
	EventCollaboration EventKind = "collaboration"
	EventBreak         EventKind = "break"
	EventMeeting       EventKind = "meeting"
	EventHelp          EventKind = "help"
)

var eventKinds = []EventKind{EventCollaboration, EventBreak, EventMeeting, EventHelp}

// ParseEventKind maps a wire string onto a known event kind.
func ParseEventKind(s string) (EventKind, bool) {
	for _, k := range eventKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// AmbientEvent is one generated scripted sequence. Constructed at trigger
// time from the static tables below, consumed by a single execution pass,
// then discarded.
type AmbientEvent struct {
	Kind         EventKind      `json:"kind"`
	Participants []string       `json:"participants"`
	Location     *grid.Position `json:"location,omitempty"`
	Notification string         `json:"notification"`
	BubbleText   string         `json:"bubble_text,omitempty"`
}

// nonMover reports whether the participant at index i stays put during the
// outbound phase. Collaboration and help are "visit" events: the visited
// agent is listed last and never relocates.
func (e *AmbientEvent) nonMover(i int) bool {
	if e.Kind != EventCollaboration && e.Kind != EventHelp {
		return false
	}
	return i == len(e.Participants)-1
}

// collabPairs are the predefined visits: the first agent walks over to the
// second agent's workstation.
var collabPairs = []struct {
	from, to     string
	notification string
}{
	{"coder", "inspector", "🔍 Inspector is walking Coder through the review findings"},
	{"designer", "coder", "🎨 Designer and Coder are discussing the new UI design"},
	{"writer", "researcher", "📊 Writer asked Researcher for the data report"},
	{"analyst", "secretary", "💼 Analyst and Secretary are going over the financial statements"},
}

// breakTakers are the agents that wander to the kitchen.
var breakTakers = []string{"coder", "writer", "analyst", "designer"}

// helpSeekers are the agents that call the coordinator over.
var helpSeekers = []string{"coder", "writer", "analyst", "designer", "researcher"}

// coordinatorID is the agent everyone asks for help.
const coordinatorID = "travis"

var meetingTopics = []string{
	"a project status sync",
	"a brainstorming session",
	"the weekly standup",
	"a requirements review",
	"sprint planning",
	"a product review",
}

// generateEvent builds the event data for one kind from the static tables.
// Pure function of tables plus randomness; repeats are possible.
func generateEvent(kind EventKind, rng Rand) *AmbientEvent {
	switch kind {
	case EventCollaboration:
		return generateCollaboration(rng)
	case EventBreak:
		return generateBreak(rng)
	case EventMeeting:
		return generateMeeting(rng)
	case EventHelp:
		return generateHelp(rng)
	default:
		return nil
	}
}

func generateCollaboration(rng Rand) *AmbientEvent {
	pair := collabPairs[rng.Intn(len(collabPairs))]
	target := agent.Lookup(pair.to)

	loc := target.Home
	return &AmbientEvent{
		Kind:         EventCollaboration,
		Participants: []string{pair.from, pair.to},
		Location:     &loc,
		Notification: pair.notification,
		BubbleText:   "...",
	}
}

func generateBreak(rng Rand) *AmbientEvent {
	id := breakTakers[rng.Intn(len(breakTakers))]
	cup := intBetween(rng, 1, 5)

	loc := agent.LocationKitchen
	return &AmbientEvent{
		Kind:         EventBreak,
		Participants: []string{id},
		Location:     &loc,
		Notification: fmt.Sprintf("☕ %s went to brew coffee cup #%d", agent.DisplayName(id), cup),
		BubbleText:   "☕",
	}
}

func generateMeeting(rng Rand) *AmbientEvent {
	count := intBetween(rng, 2, 4)
	participants := shuffleIDs(rng, agent.RosterIDs())[:count]

	names := make([]string, len(participants))
	for i, id := range participants {
		names[i] = agent.DisplayName(id)
	}
	topic := meetingTopics[rng.Intn(len(meetingTopics))]

	loc := agent.LocationConference
	return &AmbientEvent{
		Kind:         EventMeeting,
		Participants: participants,
		Location:     &loc,
		Notification: fmt.Sprintf("📋 %s are in the middle of %s", strings.Join(names, ", "), topic),
		BubbleText:   "Meeting...",
	}
}

func generateHelp(rng Rand) *AmbientEvent {
	id := helpSeekers[rng.Intn(len(helpSeekers))]

	loc := agent.Lookup(id).Home
	return &AmbientEvent{
		Kind:         EventHelp,
		Participants: []string{id, coordinatorID},
		Location:     &loc,
		Notification: fmt.Sprintf("❓ %s asked %s for a hand with a problem", agent.DisplayName(id), agent.DisplayName(coordinatorID)),
		BubbleText:   "?",
	}
}
