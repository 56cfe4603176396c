// Package form implements the submission form's mutual-exclusion state
// machine. The form offers two alternative inputs, a file and pasted
// text, and only one may be active at a time. The transition table here
// is the source of truth; the browser script mirrors it for display.
package form

import "github.com/DEFRA/content-reviewer-frontend/pkg/errors"

type State int

const (
	// Empty: both inputs enabled.
	Empty State = iota
	// FileChosen: text input cleared and disabled.
	FileChosen
	// TextEntered: file input cleared and disabled.
	TextEntered
)

func (s State) String() string {
	switch s {
	case FileChosen:
		return "file_chosen"
	case TextEntered:
		return "text_entered"
	default:
		return "empty"
	}
}

type EventKind int

const (
	FileSelected EventKind = iota
	FileCleared
	TextChanged
	TextCleared
)

// Event is one input-change notification from whatever drives the form.
// TextLen only matters for TextChanged: zero-length text is equivalent
// to TextCleared.
type Event struct {
	Kind    EventKind
	TextLen int
}

// Action tells the UI what to do with the inactive input after a
// transition.
type Action int

const (
	ActionNone Action = iota
	ActionDisableText
	ActionDisableFile
	ActionEnableBoth
)

// Next returns the state after applying ev, plus the UI action the
// transition requires. Selecting one input from Empty clears and
// disables the other; clearing the active input returns to Empty.
// Events for the disabled input are ignored.
func Next(s State, ev Event) (State, Action) {
	switch s {
	case Empty:
		switch ev.Kind {
		case FileSelected:
			return FileChosen, ActionDisableText
		case TextChanged:
			if ev.TextLen > 0 {
				return TextEntered, ActionDisableFile
			}
		}
	case FileChosen:
		if ev.Kind == FileCleared {
			return Empty, ActionEnableBoth
		}
	case TextEntered:
		switch ev.Kind {
		case TextCleared:
			return Empty, ActionEnableBoth
		case TextChanged:
			if ev.TextLen == 0 {
				return Empty, ActionEnableBoth
			}
			return TextEntered, ActionNone
		}
	}
	return s, ActionNone
}

// CheckSubmission enforces the submit-time invariant: exactly one of
// file or text must be present. The UI should make violations
// impossible, but submissions can bypass the UI entirely.
func CheckSubmission(hasFile, hasText bool) error {
	switch {
	case hasFile && hasText:
		return errors.ErrBothInputs
	case !hasFile && !hasText:
		return errors.ErrNoInput
	default:
		return nil
	}
}

// Machine tracks form state across a stream of events.
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: Empty}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Apply(ev Event) Action {
	next, action := Next(m.state, ev)
	m.state = next
	return action
}
