package workflow

// Trigger represents an event that can cause a state transition.
type Trigger string

const (
	// TriggerCompleteDownload fires after the export-and-save sequence
	// succeeds, advancing the session to composition.
	TriggerCompleteDownload Trigger = "COMPLETE_DOWNLOAD"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
