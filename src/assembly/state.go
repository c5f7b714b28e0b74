package assembly

// State is a pipeline stage. States only move forward.
type State int

const (
	Loading State = iota
	Normalizing
	Resolving
	Binding
	Frozen
)

var stateNames = [...]string{
	Loading:     "loading",
	Normalizing: "normalizing",
	Resolving:   "resolving",
	Binding:     "binding",
	Frozen:      "frozen",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
