package sdk

// State is a reconciliation state.
type State int

const (
	Unchecked State = iota
	Validated
	AwaitingConsent
	Aborted
	Downloading
	LaunchedInstaller
	TerminatedForRerun
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Validated:
		return "validated"
	case AwaitingConsent:
		return "awaiting_consent"
	case Aborted:
		return "aborted"
	case Downloading:
		return "downloading"
	case LaunchedInstaller:
		return "launched_installer"
	case TerminatedForRerun:
		return "terminated_for_rerun"
	default:
		return "unknown"
	}
}

