// Package agent defines the core domain entities for office agents.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package agent

import (
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"
)

// Mood is an agent's emotional display state.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodFocused  Mood = "focused"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
	MoodExcited  Mood = "excited"
)

// Activity is an agent's current task-state label. It drives mood transitions.
type Activity string

const (
	ActivityIdle    Activity = "idle"
	ActivityWorking Activity = "working"
	ActivityMeeting Activity = "meeting"
	ActivityBreak   Activity = "break"
	ActivityHelping Activity = "helping"
)

// AllMoods lists every valid mood, in sampling order.
var AllMoods = []Mood{MoodHappy, MoodFocused, MoodTired, MoodStressed, MoodExcited}

// AllActivities lists every valid activity, in sampling order.
var AllActivities = []Activity{ActivityIdle, ActivityWorking, ActivityMeeting, ActivityBreak, ActivityHelping}

// MoodEmoji maps each mood to the glyph the renderer shows above an agent.
var MoodEmoji = map[Mood]string{
	MoodHappy:    "😊",
	MoodFocused:  "🤔",
	MoodTired:    "😫",
	MoodStressed: "😤",
	MoodExcited:  "🤩",
}

// ActivityNames maps activities to their display labels.
var ActivityNames = map[Activity]string{
	ActivityIdle:    "Idle",
	ActivityWorking: "Working",
	ActivityMeeting: "Meeting",
	ActivityBreak:   "Break",
	ActivityHelping: "Helping",
}

// State is the mutable simulation state of one agent.
// Energy is always clamped to [0,100]; TaskCount never goes below zero.
type State struct {
	ID         string    `json:"id"`
	Mood       Mood      `json:"mood"`
	Activity   Activity  `json:"activity"`
	Energy     int       `json:"energy"`
	TaskCount  int       `json:"task_count"`
	LastActive time.Time `json:"last_active"`
}

// Profile is the static configuration of one agent: identity, look and
// home workstation. Profiles are immutable after roster construction; the
// live position is owned by the movement controller.
type Profile struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Role        string        `json:"role"`
	Color       string        `json:"color"`
	Home        grid.Position `json:"home"`
	Workstation string        `json:"workstation"`
}

// ClampEnergy bounds an energy value to the valid [0,100] band.
func ClampEnergy(e int) int {
	if e < 0 {
		return 0
	}
	if e > 100 {
		return 100
	}
	return e
}
