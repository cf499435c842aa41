// Package picker models the team dropdown shared by the dashboard and the
// factor analysis screens.
package picker

import "vibe-insights/teams"

// State is whether the dropdown list is showing.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// ParseState reads a state written by String. Anything else is Closed.
func ParseState(s string) State {
	if s == "open" {
		return Open
	}
	return Closed
}

// Picker is the dropdown state plus the selected team. It is a value: every
// transition returns the next Picker and leaves the receiver alone.
type Picker struct {
	State    State
	Selected teams.Team
}

// New returns a closed picker with the default team selected.
func New() Picker {
	return Picker{State: Closed, Selected: teams.DefaultTeam}
}

// Toggle flips the dropdown open or closed.
func (p Picker) Toggle() Picker {
	if p.State == Open {
		p.State = Closed
	} else {
		p.State = Open
	}
	return p
}

// Select picks team and closes the dropdown. The list is only on screen
// while open, so a select in the closed state changes nothing.
func (p Picker) Select(team teams.Team) Picker {
	if p.State != Open {
		return p
	}
	return Picker{State: Closed, Selected: team}
}

// ClickOutside closes the dropdown and keeps the current selection.
func (p Picker) ClickOutside() Picker {
	p.State = Closed
	return p
}
