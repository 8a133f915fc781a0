package domain

import (
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDormant, "Dormant"},
		{StateGrowing, "Growing"},
		{StateExpired, "Expired"},
		{StateBloomed, "Bloomed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.state.String()
		if got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{EventPlaceRequested, "PlaceRequested"},
		{EventTimerFired, "TimerFired"},
		{EventTapWhileExpired, "TapWhileExpired"},
		{Event(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.event.String()
		if got != tt.want {
			t.Errorf("Event(%d).String() = %s, want %s", tt.event, got, tt.want)
		}
	}
}

func TestTransition_ValidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		event Event
		want  State
	}{
		{"dormant placed", StateDormant, EventPlaceRequested, StateGrowing},
		{"growing expires", StateGrowing, EventTimerFired, StateExpired},
		{"expired tapped", StateExpired, EventTapWhileExpired, StateBloomed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.event)
			if err != nil {
				t.Fatalf("Transition(%s, %s) error = %v, want nil", tt.from, tt.event, err)
			}
			if got != tt.want {
				t.Errorf("Transition(%s, %s) = %s, want %s", tt.from, tt.event, got, tt.want)
			}
		})
	}
}

// Every (state, event) pair outside the three valid transitions must be
// rejected and must return the current state unchanged.
func TestTransition_RejectsEverythingElse(t *testing.T) {
	states := []State{StateDormant, StateGrowing, StateExpired, StateBloomed}
	events := []Event{EventPlaceRequested, EventTimerFired, EventTapWhileExpired}

	valid := map[State]Event{
		StateDormant: EventPlaceRequested,
		StateGrowing: EventTimerFired,
		StateExpired: EventTapWhileExpired,
	}

	for _, s := range states {
		for _, e := range events {
			if ev, ok := valid[s]; ok && ev == e {
				continue
			}
			t.Run(s.String()+"_"+e.String(), func(t *testing.T) {
				got, err := Transition(s, e)
				if !errors.Is(err, ErrRejectedTransition) {
					t.Errorf("Transition(%s, %s) error = %v, want ErrRejectedTransition", s, e, err)
				}
				if got != s {
					t.Errorf("Transition(%s, %s) = %s, want state unchanged", s, e, got)
				}
			})
		}
	}
}

// The only path to Bloomed runs through every state in order.
func TestTransition_OnlyPathToBloomed(t *testing.T) {
	s := StateDormant
	for _, e := range []Event{EventPlaceRequested, EventTimerFired, EventTapWhileExpired} {
		next, err := Transition(s, e)
		if err != nil {
			t.Fatalf("Transition(%s, %s) error = %v", s, e, err)
		}
		if next <= s {
			t.Fatalf("Transition(%s, %s) = %s, not monotonic", s, e, next)
		}
		s = next
	}
	if s != StateBloomed {
		t.Fatalf("full path ends in %s, want Bloomed", s)
	}

	// Bloomed is terminal.
	for _, e := range []Event{EventPlaceRequested, EventTimerFired, EventTapWhileExpired} {
		if _, err := Transition(StateBloomed, e); !errors.Is(err, ErrRejectedTransition) {
			t.Errorf("Transition(Bloomed, %s) error = %v, want ErrRejectedTransition", e, err)
		}
	}
}

func TestNewEntity(t *testing.T) {
	e := NewEntity("fern", "Fern", "fern_sprout", "fern_frond", 60)

	if e.State != StateDormant {
		t.Errorf("initial state = %v, want StateDormant", e.State)
	}
	if e.TimerHandle != 0 {
		t.Errorf("initial timer handle = %v, want 0", e.TimerHandle)
	}
	if e.Placement != 0 {
		t.Errorf("initial placement = %v, want 0", e.Placement)
	}
	if e.GrowthDuration != 60 {
		t.Errorf("growth duration = %v, want 60", e.GrowthDuration)
	}
}
