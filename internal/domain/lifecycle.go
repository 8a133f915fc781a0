package domain

import "fmt"

// State is the lifecycle state of a placeable entity.
type State int

const (
	StateDormant State = iota
	StateGrowing
	StateExpired
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

// Event is an external stimulus applied against an entity's lifecycle.
type Event int

const (
	EventPlaceRequested Event = iota
	EventTimerFired
	EventTapWhileExpired
)

// String returns a human-readable representation of the event.
func (e Event) String() string {
	switch e {
	case EventPlaceRequested:
		return "PlaceRequested"
	case EventTimerFired:
		return "TimerFired"
	case EventTapWhileExpired:
		return "TapWhileExpired"
	default:
		return "Unknown"
	}
}

// Transition computes the next state for an entity given an event.
//
// The only accepted transitions are:
//
//	Dormant --PlaceRequested--> Growing
//	Growing --TimerFired------> Expired
//	Expired --TapWhileExpired-> Bloomed (terminal)
//
// Every other (state, event) pair returns the current state unchanged and an
// error wrapping ErrRejectedTransition. Transition performs no side effects;
// timers and rendering are orchestrated by the controller.
func Transition(current State, event Event) (State, error) {
	switch {
	case current == StateDormant && event == EventPlaceRequested:
		return StateGrowing, nil
	case current == StateGrowing && event == EventTimerFired:
		return StateExpired, nil
	case current == StateExpired && event == EventTapWhileExpired:
		return StateBloomed, nil
	}
	return current, fmt.Errorf("%w: %s while %s", ErrRejectedTransition, event, current)
}
