package transport

// State is a step of a Session.
type State int

const (
	Idle State = iota
	Connecting
	Connected
	Sending
	Closed
	Failed
)

var stateNames = map[State]string{
	Idle:       "idle",
	Connecting: "connecting",
	Connected:  "connected",
	Sending:    "sending",
	Closed:     "closed",
	Failed:     "failed",
}

// String returns the lower case name.
func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Closed || s == Failed
}

// transitions lists the legal moves out of each state.
var transitions = map[State][]State{
	Idle:       {Connecting},
	Connecting: {Connected, Failed},
	Connected:  {Sending, Failed},
	Sending:    {Closed, Failed},
}

// CanTransition reports whether a Session may move from one state to another.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
