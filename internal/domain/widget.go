package domain

import (
	"fmt"
	"time"
)

// CopyState represents the visibility of the copy control.
type CopyState string

const (
	CopyHidden   CopyState = "hidden"
	CopyRevealed CopyState = "revealed"
)

// Event represents something that happened on the widget.
type Event string

const (
	EventGenerate      Event = "generate"
	EventCopySucceeded Event = "copy_succeeded"
	EventCopyFailed    Event = "copy_failed"
	EventColorChanged  Event = "color_changed"
	EventPageLoaded    Event = "page_loaded"
)

// Events lists every widget event in declaration order.
var Events = []Event{
	EventGenerate,
	EventCopySucceeded,
	EventCopyFailed,
	EventColorChanged,
	EventPageLoaded,
}

// Transition defines a valid copy control change: an event moves it from Src to Dst.
type Transition struct {
	Event Event
	Src   CopyState
	Dst   CopyState
}

// Transitions defines all valid copy control changes.
// The control is revealed by the first generation and never hidden again.
var Transitions = []Transition{
	{Event: EventGenerate, Src: CopyHidden, Dst: CopyRevealed},
}

// DefaultColor seeds the color control and the display region.
const DefaultColor = "#1a1a2e"

// GradientAngle is the direction of the display region gradient, in degrees.
const GradientAngle = 135

// Gradient is a two-stop background built from a single color.
// The second stop is the same color at alpha 0xdd.
type Gradient struct {
	Color string
	Angle int
}

// NewGradient creates a gradient for an already normalized #rrggbb color.
func NewGradient(color string) Gradient {
	return Gradient{Color: color, Angle: GradientAngle}
}

// CSS renders the gradient as a CSS background value.
func (g Gradient) CSS() string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s 0%%, %sdd 100%%)", g.Angle, g.Color, g.Color)
}

// Activity is a recorded widget event. It never carries identifier text.
type Activity struct {
	ID        string
	Event     Event
	Length    int
	Detail    string
	CreatedAt time.Time
}

// NewActivity creates an activity stamped with the current time.
func NewActivity(id string, event Event, length int, detail string) Activity {
	return Activity{
		ID:        id,
		Event:     event,
		Length:    length,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// EventCount is the number of recorded activities for one event.
type EventCount struct {
	Event Event
	Count int
}
