package workflow

// State represents a step in the guided email session.
type State string

const (
	// StateDownload is the initial step: the invoice PDF must be exported
	// and saved to disk before composition is offered.
	StateDownload State = "DOWNLOAD"

	// StateCompose is the terminal step for a session: the draft fields are
	// editable and the mail client handoff is available.
	StateCompose State = "COMPOSE"
)

var validStates = map[State]bool{
	StateDownload: true,
	StateCompose:  true,
}

var terminalStates = map[State]bool{
	StateCompose: true,
}

// IsTerminal returns true if no further transitions leave the state.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a known session state.
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}
