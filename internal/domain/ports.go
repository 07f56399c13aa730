package domain

import "context"

// IdentifierGenerator produces identifiers sampled from Alphabet.
// Implementations must be safe for concurrent use.
type IdentifierGenerator interface {
	Generate(length int) (Identifier, error)
}

// ActivityRepository defines the persistence contract for widget activity.
type ActivityRepository interface {
	Record(ctx context.Context, activity Activity) error
	List(ctx context.Context, filter ListFilter) ([]Activity, error)
	Summary(ctx context.Context) ([]EventCount, error)
}

// ListFilter holds optional criteria for listing activity.
type ListFilter struct {
	Event  *Event
	Limit  int
	Offset int
}

// EventPublisher defines the contract for emitting widget activity.
type EventPublisher interface {
	Publish(ctx context.Context, activity Activity) error
}

// TransitionValidator checks copy control transitions.
type TransitionValidator interface {
	Apply(ctx context.Context, current CopyState, event Event) (CopyState, error)
}

// Clipboard writes text to the platform clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// --- UI handles ---

// Trigger is the control that requests a new identifier.
type Trigger interface {
	OnClick(fn func(ctx context.Context))
	SetLabel(label string)
}

// TextTarget displays a line of text.
type TextTarget interface {
	SetText(text string)
	Text() string
}

// CopyControl is the affordance that copies the displayed identifier.
type CopyControl interface {
	OnClick(fn func(ctx context.Context))
	Show()
}

// ColorControl is the color input.
type ColorControl interface {
	OnInput(fn func(ctx context.Context, value string))
	SetValue(value string)
}

// Region is the display area whose background follows the color control.
type Region interface {
	SetBackground(css string)
}

// Notifier surfaces short messages to the user.
type Notifier interface {
	Notify(message string)
}
