package engine

import (
	"testing"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// scriptRand replays a fixed sequence of draws so state transitions can be
// steered onto a specific branch.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptRand) Intn(n int) int {
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

func TestSeedRanges(t *testing.T) {
	el := events.NewLog(nil)
	log := logger.NewLogger()
	ss := NewStateStore(el, log, NewRand(42), time.Minute, agent.RosterIDs())
	defer ss.Destroy()

	states := ss.AllStates()
	if len(states) != len(agent.Roster) {
		t.Fatalf("Expected %d seeded states, got %d", len(agent.Roster), len(states))
	}

	for id, st := range states {
		if st.Energy < 60 || st.Energy > 100 {
			t.Errorf("Expected energy of %s in [60,100], got %d", id, st.Energy)
		}
		if st.TaskCount < 0 || st.TaskCount > 4 {
			t.Errorf("Expected task count of %s in [0,4], got %d", id, st.TaskCount)
		}
		validMood := false
		for _, m := range agent.AllMoods {
			if st.Mood == m {
				validMood = true
			}
		}
		if !validMood {
			t.Errorf("Seeded mood %q of %s is not a known mood", st.Mood, id)
		}
		validActivity := false
		for _, a := range agent.AllActivities {
			if st.Activity == a {
				validActivity = true
			}
		}
		if !validActivity {
			t.Errorf("Seeded activity %q of %s is not a known activity", st.Activity, id)
		}
	}
}

func TestWorkingHighEnergyMood(t *testing.T) {
	st := &agent.State{
		ID:        "coder",
		Activity:  agent.ActivityIdle,
		Energy:    80,
		TaskCount: 2,
	}

	// 0.3 lands on working, 0.6 picks focused, 0.6 picks task +1.
	rng := &scriptRand{floats: []float64{0.3, 0.6, 0.6}}
	updateState(st, rng, time.Now())

	if st.Activity != agent.ActivityWorking {
		t.Fatalf("Expected working activity, got %s", st.Activity)
	}
	if st.Mood != agent.MoodFocused {
		t.Errorf("Expected focused mood at energy 80, got %s", st.Mood)
	}
	if st.Energy != 75 {
		t.Errorf("Expected energy 75 after working, got %d", st.Energy)
	}
	if st.TaskCount != 3 {
		t.Errorf("Expected task count 3, got %d", st.TaskCount)
	}
}

func TestBreakRecoversEnergy(t *testing.T) {
	st := &agent.State{ID: "writer", Activity: agent.ActivityIdle, Energy: 95}

	// 0.85 lands on break.
	rng := &scriptRand{floats: []float64{0.85}}
	updateState(st, rng, time.Now())

	if st.Activity != agent.ActivityBreak {
		t.Fatalf("Expected break activity, got %s", st.Activity)
	}
	if st.Mood != agent.MoodHappy {
		t.Errorf("Expected happy mood on break, got %s", st.Mood)
	}
	if st.Energy != 100 {
		t.Errorf("Expected energy clamped to 100, got %d", st.Energy)
	}
}

func TestHelpingDrainsEnergy(t *testing.T) {
	st := &agent.State{ID: "travis", Activity: agent.ActivityIdle, Energy: 50}

	// 0.95 lands on helping.
	rng := &scriptRand{floats: []float64{0.95}}
	updateState(st, rng, time.Now())

	if st.Activity != agent.ActivityHelping {
		t.Fatalf("Expected helping activity, got %s", st.Activity)
	}
	if st.Mood != agent.MoodExcited {
		t.Errorf("Expected excited mood while helping, got %s", st.Mood)
	}
	if st.Energy != 42 {
		t.Errorf("Expected energy 42, got %d", st.Energy)
	}
}

func TestLeavingWorkingFinishesTask(t *testing.T) {
	st := &agent.State{ID: "analyst", Activity: agent.ActivityWorking, Energy: 40, TaskCount: 3}

	// 0.1 lands on idle.
	rng := &scriptRand{floats: []float64{0.1}}
	updateState(st, rng, time.Now())

	if st.Activity != agent.ActivityIdle {
		t.Fatalf("Expected idle activity, got %s", st.Activity)
	}
	if st.TaskCount != 2 {
		t.Errorf("Expected task count to drop to 2 when leaving work, got %d", st.TaskCount)
	}
	if st.Mood != agent.MoodTired {
		t.Errorf("Expected tired mood idling at energy 40, got %s", st.Mood)
	}
	if st.Energy != 45 {
		t.Errorf("Expected energy 45 after idle recovery, got %d", st.Energy)
	}
}

func TestUnknownAgentIsIgnored(t *testing.T) {
	el := events.NewLog(nil)
	log := logger.NewLogger()
	ss := NewStateStore(el, log, NewRand(7), time.Minute, []string{"coder"})
	defer ss.Destroy()

	// Setters on unknown ids must be silent no-ops.
	ss.SetMood("ghost", agent.MoodHappy)
	ss.SetActivity("ghost", agent.ActivityBreak)
	ss.AdjustEnergy("ghost", 50)

	if _, ok := ss.GetState("ghost"); ok {
		t.Errorf("Expected no state for unknown agent")
	}
	if _, ok := ss.GetState("coder"); !ok {
		t.Errorf("Expected state for registered agent")
	}
}

func TestSettersMutateAndRestamp(t *testing.T) {
	el := events.NewLog(nil)
	log := logger.NewLogger()
	ss := NewStateStore(el, log, NewRand(7), time.Minute, []string{"coder"})
	defer ss.Destroy()

	before, _ := ss.GetState("coder")
	time.Sleep(5 * time.Millisecond)

	ss.SetMood("coder", agent.MoodStressed)
	ss.AdjustEnergy("coder", -1000)

	after, _ := ss.GetState("coder")
	if after.Mood != agent.MoodStressed {
		t.Errorf("Expected stressed mood, got %s", after.Mood)
	}
	if after.Energy != 0 {
		t.Errorf("Expected energy clamped to 0, got %d", after.Energy)
	}
	if !after.LastActive.After(before.LastActive) {
		t.Errorf("Expected LastActive to be restamped on mutation")
	}
}

func TestDestroyIdempotent(t *testing.T) {
	el := events.NewLog(nil)
	log := logger.NewLogger()
	ss := NewStateStore(el, log, NewRand(7), time.Minute, []string{"coder"})

	ss.Destroy()
	ss.Destroy()
}
