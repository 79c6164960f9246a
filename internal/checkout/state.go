package checkout

// State tracks a checkout attempt through its lifecycle. Errored is absorbing
// for the attempt: every failure is terminal and requires the user to trigger
// checkout again.
type State int

const (
	StateIdle State = iota
	StateValidating
	StatePlacing
	StateNotifying
	StateDone
	StateErrored
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StatePlacing:
		return "placing"
	case StateNotifying:
		return "notifying"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}
