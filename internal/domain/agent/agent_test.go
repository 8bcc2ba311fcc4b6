package agent

import "testing"

func TestRosterIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Roster {
		if seen[p.ID] {
			t.Errorf("Duplicate agent id in roster: %s", p.ID)
		}
		seen[p.ID] = true
	}
	if len(Roster) != 8 {
		t.Errorf("Expected 8 agents in the roster, got %d", len(Roster))
	}
}

func TestLookup(t *testing.T) {
	p := Lookup("travis")
	if p == nil || p.Name != "Travis" {
		t.Fatalf("Expected Travis profile, got %v", p)
	}
	if p.Home.X != 10 || p.Home.Y != 1 {
		t.Errorf("Unexpected home for travis: %v", p.Home)
	}

	if Lookup("nobody") != nil {
		t.Error("Expected nil profile for unknown id")
	}
	if DisplayName("nobody") != "nobody" {
		t.Error("DisplayName should fall back to the raw id")
	}
}

func TestClampEnergy(t *testing.T) {
	cases := []struct{ in, want int }{
		{-10, 0}, {0, 0}, {55, 55}, {100, 100}, {140, 100},
	}
	for _, c := range cases {
		if got := ClampEnergy(c.in); got != c.want {
			t.Errorf("ClampEnergy(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRandomDialogueUnknownAgent(t *testing.T) {
	state, text := RandomDialogue("ghost", func(int) int { return 0 })
	if state != DialogueIdle || text != "..." {
		t.Errorf("Expected placeholder dialogue, got %s %q", state, text)
	}
}

func TestRandomDialogueStates(t *testing.T) {
	for i, want := range []DialogueState{DialogueIdle, DialogueGreeting, DialogueWorking, DialogueProud} {
		idx := i
		state, text := RandomDialogue("coder", func(int) int { return idx })
		if state != want {
			t.Errorf("Picker index %d: expected state %s, got %s", idx, want, state)
		}
		if text == "" {
			t.Errorf("Empty dialogue line for state %s", want)
		}
	}
}
