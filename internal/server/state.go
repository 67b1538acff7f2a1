package server

// State is the lifecycle phase of a Server.
type State int32

const (
	StateUninitialized State = iota
	StateRegistering
	StateListening
	StateShuttingDown
	StateTerminated
)

var stateNames = [...]string{
	StateUninitialized: "uninitialized",
	StateRegistering:   "registering",
	StateListening:     "listening",
	StateShuttingDown:  "shutting_down",
	StateTerminated:    "terminated",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// State returns the current lifecycle phase.
func (s *Server) State() State {
	return State(s.state.Load())
}

// transition moves from one phase to the next and reports whether the
// server was in the expected phase.
func (s *Server) transition(from, to State) bool {
	if !s.state.CompareAndSwap(int32(from), int32(to)) {
		return false
	}
	if s.Logger == nil {
		return true
	}
	s.Logger.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("server state changed")
	return true
}
