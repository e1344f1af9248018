package deployer

// State is a step of a deployment run. Runs move strictly forward through
// Start, SignerResolved, FactoryResolved, TxSubmitted, Confirmed and Done;
// any state may move to Failed, which is terminal.
type State int

const (
	StateStart State = iota
	StateSignerResolved
	StateFactoryResolved
	StateTxSubmitted
	StateConfirmed
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateSignerResolved:
		return "SIGNER_RESOLVED"
	case StateFactoryResolved:
		return "FACTORY_RESOLVED"
	case StateTxSubmitted:
		return "TX_SUBMITTED"
	case StateConfirmed:
		return "CONFIRMED"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// canTransition allows the next state in sequence, or Failed from any
// non-terminal state.
func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	return to == from+1
}
