package engine

import (
	"github.com/san-kum/holesim/internal/capture"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/motion"
	"github.com/san-kum/holesim/internal/sequence"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMoving
	PhaseCapturing
	PhaseReappearing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMoving:
		return "moving"
	case PhaseCapturing:
		return "capturing"
	case PhaseReappearing:
		return "reappearing"
	}
	return "unknown"
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, bool) {
	for p := PhaseIdle; p <= PhaseReappearing; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return PhaseIdle, false
}

type EventKind int

const (
	EventFlingStarted EventKind = iota
	EventGestureRejected
	EventHandoff
	EventSettled
	EventCaptured
	EventReappearing
	EventReappeared
	EventReset
)

var eventNames = [...]string{
	"fling_started",
	"gesture_rejected",
	"handoff",
	"settled",
	"captured",
	"reappearing",
	"reappeared",
	"reset",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Rejection reasons carried by EventGestureRejected.
const (
	RejectMoving     = "moving"
	RejectFrozen     = "frozen"
	RejectUnmeasured = "unmeasured"
	RejectStill      = "still"
)

// Event is one state machine transition. Fields that do not apply to a
// kind are left zero; Zone is -1 unless the kind is EventCaptured.
type Event struct {
	Kind     EventKind
	Time     float64
	Frame    int
	Position dynamo.Vec2
	Velocity dynamo.Vec2
	Axis     motion.Axis
	Target   float64
	Zone     int
	Reason   string
}

// Observer is notified of every event and, after each Step, of the frame.
type Observer interface {
	OnEvent(e Event)
	OnFrame(s Snapshot)
}

// ObserverFuncs adapts plain functions to Observer. Either may be nil.
type ObserverFuncs struct {
	Event func(Event)
	Frame func(Snapshot)
}

func (o ObserverFuncs) OnEvent(e Event) {
	if o.Event != nil {
		o.Event(e)
	}
}

func (o ObserverFuncs) OnFrame(s Snapshot) {
	if o.Frame != nil {
		o.Frame(s)
	}
}

// Snapshot is everything a renderer may read. Position is the logical
// coordinate; the visual transform is layered on top of it.
type Snapshot struct {
	Time       float64
	Frame      int
	Phase      Phase
	Position   dynamo.Vec2
	Velocity   dynamo.Vec2
	BallSize   dynamo.Vec2
	Surface    dynamo.Vec2
	Measured   bool
	Frozen     bool
	Capturing  bool
	Visual     sequence.Visual
	Zones      []capture.Zone
	Mechanisms [2]motion.Mechanism
	Tracker    [4]float64
}

// VisualPosition is where the ball is drawn: its logical position plus
// the running script's translation.
func (s Snapshot) VisualPosition() dynamo.Vec2 {
	return s.Position.Add(s.Visual.Translate)
}

func (s Snapshot) Center() dynamo.Vec2 {
	return capture.BallCenter(s.Position, s.BallSize)
}

func (s Snapshot) Speed() float64 {
	return s.Velocity.Len()
}
