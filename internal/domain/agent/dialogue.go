package agent

// DialogueState selects which canned line an agent delivers when clicked.
type DialogueState string

const (
	DialogueIdle     DialogueState = "idle"
	DialogueGreeting DialogueState = "greeting"
	DialogueWorking  DialogueState = "working"
	DialogueProud    DialogueState = "proud"
)

var dialogueStates = []DialogueState{DialogueIdle, DialogueGreeting, DialogueWorking, DialogueProud}

// Dialogues holds one line per dialogue state for a single agent.
type Dialogues struct {
	Idle     string
	Greeting string
	Working  string
	Proud    string
}

var dialogueData = map[string]Dialogues{
	"travis": {
		Idle:     "Task progress looks good today. Every agent is running smoothly.",
		Greeting: "Welcome to the command center! I'm Travis, the brain of this office.",
		Working:  "Coordinating tasks between Researcher and Coder... scheduling is an art.",
		Proud:    "Managed twelve tasks at once yesterday, all delivered on time. Efficiency is my middle name.",
	},
	"researcher": {
		Idle:     "Hmm... this dataset is interesting. Let me dig a little deeper.",
		Greeting: "Hello! I'm Researcher, professional information miner. Need something investigated?",
		Working:  "Cross-referencing data from three different sources...",
		Proud:    "That deep-dive report? The client called it the most thorough analysis they'd ever seen.",
	},
	"inspector": {
		Idle:     "...quality is non-negotiable. Every line of code gets reviewed.",
		Greeting: "I'm Inspector. Nothing ships without passing my review first.",
		Working:  "Found three potential issues... writing up the review report now.",
		Proud:    "Zero bugs after launch. That's what quality assurance should look like.",
	},
	"secretary": {
		Idle:     "Let me check the calendar... two meetings to schedule this afternoon.",
		Greeting: "Good morning! I'm Secretary, I keep this office running. Anything you need?",
		Working:  "Summarizing today's inbox, a few of these look urgent...",
		Proud:    "One hundred percent meeting attendance this month, and not a single one ran over. Impressive, right?",
	},
	"coder": {
		Idle:     "Hmm... this function could be more elegant. Time for a quick refactor.",
		Greeting: "Hey! I'm Coder. Code is my language and bugs are my nemesis.",
		Working:  "Building a new feature... coffee is running low but the ideas aren't.",
		Proud:    "That algorithm from yesterday? Runtime went from 3 seconds to 0.1. Ten times faster isn't enough, aim for thirty.",
	},
	"writer": {
		Idle:     "Words carry weight... every sentence deserves a second look.",
		Greeting: "Hi, I'm Writer. Good writing can change the world, or at least the quality of a report.",
		Working:  "Drafting this week's analysis... third revision already.",
		Proud:    "That industry piece got shared hundreds of times. Good writing speaks for itself.",
	},
	"designer": {
		Idle:     "This spacing is off by two pixels... no, it has to line up.",
		Greeting: "Hey! I'm Designer. Pixel-perfect isn't obsession, it's professionalism.",
		Working:  "Working on the new UI... fifth color palette attempt and counting.",
		Proud:    "Users said the new interface 'just feels right'. Good design is the kind you never notice.",
	},
	"analyst": {
		Idle:     "The market is doing something interesting today... let me model it.",
		Greeting: "Hello, I'm Analyst. Numbers don't lie, but they do need interpreting.",
		Working:  "Running a regression... the correlation in this batch is higher than expected.",
		Proud:    "Ninety-two percent forecast accuracy last quarter. Markets are chaotic, not incomprehensible.",
	},
}

var statusData = map[string]string{
	"travis":     "Status: Online | Managed tasks: 8 | Done today: 5 | Queued: 3",
	"researcher": "Status: Researching | Open investigations: 2 | Reports this week: 3 | Sources: 12",
	"inspector":  "Status: Reviewing | Reviewed today: 4 | Rejected: 1 | Pending: 2",
	"secretary":  "Status: Busy | Unread mail: 7 | Meetings today: 3 | Todos: 5",
	"coder":      "Status: Coding | Open PRs: 2 | Bugs fixed: 3 | Awaiting deploy: 1",
	"writer":     "Status: Drafting | Articles in flight: 1 | Words this week: 2,400 | Draft: v3",
	"designer":   "Status: Designing | In progress: 2 | Delivered: 1 | In revision: 1",
	"analyst":    "Status: Analyzing | Tracked assets: 15 | Models running | Accuracy this month: 89%",
}

// RandomDialogue picks one of the agent's canned lines using the supplied
// picker (an index function, typically rand.Intn). Unknown agents get a
// silent placeholder.
func RandomDialogue(id string, intn func(int) int) (DialogueState, string) {
	d, ok := dialogueData[id]
	if !ok {
		return DialogueIdle, "..."
	}
	state := dialogueStates[intn(len(dialogueStates))]
	switch state {
	case DialogueGreeting:
		return state, d.Greeting
	case DialogueWorking:
		return state, d.Working
	case DialogueProud:
		return state, d.Proud
	default:
		return DialogueIdle, d.Idle
	}
}

// StatusInfo returns the hover-panel status summary for an agent.
func StatusInfo(id string) string {
	if s, ok := statusData[id]; ok {
		return s
	}
	return "No data"
}
