package agent

import "github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"

// Shared office locations agents travel to during scripted events.
var (
	LocationKitchen    = grid.Position{X: 18, Y: 14}
	LocationConference = grid.Position{X: 12, Y: 12}
	LocationLounge     = grid.Position{X: 6, Y: 14}
)

// Roster is the fixed cast of the office, in display order. Travis is the
// coordinator other agents come to for help.
var Roster = []Profile{
	{
		ID:          "travis",
		Name:        "Travis",
		Role:        "System Coordinator",
		Color:       "#1E3A8A",
		Home:        grid.Position{X: 10, Y: 1},
		Workstation: "Command Center",
	},
	{
		ID:          "researcher",
		Name:        "Researcher",
		Role:        "Data Analyst",
		Color:       "#0E7490",
		Home:        grid.Position{X: 5, Y: 4},
		Workstation: "Data Wall",
	},
	{
		ID:          "inspector",
		Name:        "Inspector",
		Role:        "Quality Assurance",
		Color:       "#1a1a1a",
		Home:        grid.Position{X: 15, Y: 4},
		Workstation: "QA Room",
	},
	{
		ID:          "secretary",
		Name:        "Secretary",
		Role:        "Office Manager",
		Color:       "#92400E",
		Home:        grid.Position{X: 3, Y: 8},
		Workstation: "Reception",
	},
	{
		ID:          "coder",
		Name:        "Coder",
		Role:        "Software Engineer",
		Color:       "#10B981",
		Home:        grid.Position{X: 17, Y: 8},
		Workstation: "The Lab",
	},
	{
		ID:          "writer",
		Name:        "Writer",
		Role:        "Content Creator",
		Color:       "#78350F",
		Home:        grid.Position{X: 5, Y: 12},
		Workstation: "Writing Nook",
	},
	{
		ID:          "designer",
		Name:        "Designer",
		Role:        "UI/UX Designer",
		Color:       "#8B5CF6",
		Home:        grid.Position{X: 15, Y: 12},
		Workstation: "The Studio",
	},
	{
		ID:          "analyst",
		Name:        "Analyst",
		Role:        "Financial Analyst",
		Color:       "#B45309",
		Home:        grid.Position{X: 10, Y: 16},
		Workstation: "Trading Desk",
	},
}

// RosterIDs returns every agent id in roster order.
func RosterIDs() []string {
	ids := make([]string, 0, len(Roster))
	for _, p := range Roster {
		ids = append(ids, p.ID)
	}
	return ids
}

// Lookup returns the profile for an agent id, or nil if unknown.
func Lookup(id string) *Profile {
	for i := range Roster {
		if Roster[i].ID == id {
			return &Roster[i]
		}
	}
	return nil
}

// DisplayName returns the agent's display name, falling back to the raw id
// for unknown agents.
func DisplayName(id string) string {
	if p := Lookup(id); p != nil {
		return p.Name
	}
	return id
}
