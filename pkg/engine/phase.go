package engine

// Phase is the state of the submission confirmation sequence.
type Phase int

const (
	// PhaseIdle means no submission is awaiting confirmation.
	PhaseIdle Phase = iota
	// PhasePendingConfirmation means validation passed and the submit hook has
	// not fired yet.
	PhasePendingConfirmation
)

func (p Phase) String() string {
	switch p {
	case PhasePendingConfirmation:
		return "pending_confirmation"
	default:
		return "idle"
	}
}
