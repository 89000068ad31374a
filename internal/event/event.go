// Package event defines the fixed, portable event taxonomy that native
// backends translate their messages into.
//
// The set of kinds is closed.
// TODO: add a user event variant that carries a caller payload across goroutines.
package event

import "fmt"

// Kind identifies a common event.
type Kind int

const (
	Close Kind = iota
	Draw
	KeyDown
	KeyUp
	Maximize
	Minimize
	MouseMove
	Resize
	QueryByCursor
	SetCursor
	Shutdown
)

var kindNames = [...]string{
	Close:         "Close",
	Draw:          "Draw",
	KeyDown:       "KeyDown",
	KeyUp:         "KeyUp",
	Maximize:      "Maximize",
	Minimize:      "Minimize",
	MouseMove:     "MouseMove",
	Resize:        "Resize",
	QueryByCursor: "QueryByCursor",
	SetCursor:     "SetCursor",
	Shutdown:      "Shutdown",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is a common event. Key is only meaningful for KeyDown and KeyUp.
type Event struct {
	Kind Kind
	Key  Key
}

// Of returns an event of kind k without a key.
func Of(k Kind) Event { return Event{Kind: k} }

// Pressed returns a KeyDown event for key.
func Pressed(key Key) Event { return Event{Kind: KeyDown, Key: key} }

// Released returns a KeyUp event for key.
func Released(key Key) Event { return Event{Kind: KeyUp, Key: key} }

func (e Event) String() string {
	switch e.Kind {
	case KeyDown, KeyUp:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	default:
		return e.Kind.String()
	}
}
