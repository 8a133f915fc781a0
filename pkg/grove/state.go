package grove

import "github.com/verdant-labs/grove/internal/domain"

// State is the lifecycle state of a placeable entity.
type State int

const (
	// StateDormant means the entity has not been placed yet.
	StateDormant State = iota

	// StateGrowing means the entity is placed and its growth timer is armed.
	StateGrowing

	// StateExpired means the growth timer fired; the entity awaits a tap.
	StateExpired

	// StateBloomed is the terminal state after transformation.
	StateBloomed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateDormant:
		return "Dormant"
	case StateGrowing:
		return "Growing"
	case StateExpired:
		return "Expired"
	case StateBloomed:
		return "Bloomed"
	default:
		return "Unknown"
	}
}

func convertState(s domain.State) State {
	switch s {
	case domain.StateDormant:
		return StateDormant
	case domain.StateGrowing:
		return StateGrowing
	case domain.StateExpired:
		return StateExpired
	case domain.StateBloomed:
		return StateBloomed
	default:
		return StateDormant
	}
}
