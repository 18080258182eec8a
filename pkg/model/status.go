package model

//go:generate go run github.com/dmarkham/enumer -type SubmissionStatus -trimprefix Status -transform lower -json -sql -output status.gen.go

// SubmissionStatus is the closed set of staging states for a Submission row.
// The zero value is StatusDraft, the only initial state.
type SubmissionStatus int

const (
	StatusDraft SubmissionStatus = iota
	StatusReady
	StatusSubmitted
	StatusRejected
)

// transitions is the allowed successor set for each state. Strict ordering
// is enforced: draft must pass through ready before submitted.
var transitions = map[SubmissionStatus][]SubmissionStatus{
	StatusDraft:     {StatusReady},
	StatusReady:     {StatusSubmitted, StatusRejected},
	StatusSubmitted: {StatusRejected},
	StatusRejected:  {},
}

// CanTransitionTo reports whether moving from s to next is a legal staging
// transition.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s. A new
// Submission row must be created to retry a terminal staging attempt.
func (s SubmissionStatus) Terminal() bool {
	return len(transitions[s]) == 0
}
