package models

import "errors"

// SubmissionPhase is where a modal's mutating request currently is
type SubmissionPhase string

const (
	PhaseIdle       SubmissionPhase = "idle"
	PhaseSubmitting SubmissionPhase = "submitting"
	PhaseSucceeded  SubmissionPhase = "succeeded"
	PhaseFailed     SubmissionPhase = "failed"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrNotSubmitting      = errors.New("no submission in flight")
	ErrSubmissionSettled  = errors.New("submission already succeeded")
)

// Submission is the per-modal request state. Idle -> Submitting -> Succeeded | Failed,
// and Failed accepts a new Begin so the user can retry.
type Submission struct {
	Phase SubmissionPhase `json:"phase"`
	Error string          `json:"error,omitempty"`
}

// SubmissionState defines the transitions allowed from one phase
type SubmissionState interface {
	Begin(s *Submission) error
	Succeed(s *Submission) error
	Fail(s *Submission, message string) error
}

// IdleState accepts a new submission
type IdleState struct{}

func (IdleState) Begin(s *Submission) error {
	s.Phase = PhaseSubmitting
	s.Error = ""
	return nil
}

func (IdleState) Succeed(*Submission) error { return ErrNotSubmitting }

func (IdleState) Fail(*Submission, string) error { return ErrNotSubmitting }

// SubmittingState waits for the request to settle
type SubmittingState struct{}

func (SubmittingState) Begin(*Submission) error { return ErrSubmissionInFlight }

func (SubmittingState) Succeed(s *Submission) error {
	s.Phase = PhaseSucceeded
	s.Error = ""
	return nil
}

func (SubmittingState) Fail(s *Submission, message string) error {
	s.Phase = PhaseFailed
	s.Error = message
	return nil
}

// SucceededState is terminal, the modal closes
type SucceededState struct{}

func (SucceededState) Begin(*Submission) error { return ErrSubmissionSettled }

func (SucceededState) Succeed(*Submission) error { return ErrSubmissionSettled }

func (SucceededState) Fail(*Submission, string) error { return ErrSubmissionSettled }

// FailedState keeps the inline error and behaves like idle for a retry
type FailedState struct{}

func (FailedState) Begin(s *Submission) error {
	s.Phase = PhaseSubmitting
	s.Error = ""
	return nil
}

func (FailedState) Succeed(*Submission) error { return ErrNotSubmitting }

func (FailedState) Fail(*Submission, string) error { return ErrNotSubmitting }

// GetSubmissionState returns the state for a phase
func GetSubmissionState(phase SubmissionPhase) SubmissionState {
	switch phase {
	case PhaseSubmitting:
		return SubmittingState{}
	case PhaseSucceeded:
		return SucceededState{}
	case PhaseFailed:
		return FailedState{}
	default:
		return IdleState{}
	}
}

func (s *Submission) Begin() error {
	return GetSubmissionState(s.Phase).Begin(s)
}

func (s *Submission) Succeed() error {
	return GetSubmissionState(s.Phase).Succeed(s)
}

func (s *Submission) Fail(message string) error {
	return GetSubmissionState(s.Phase).Fail(s, message)
}

// InFlight reports whether the triggering control must stay disabled
func (s Submission) InFlight() bool {
	return s.Phase == PhaseSubmitting
}

// SetInlineError records a validation message without a network round trip
func (s *Submission) SetInlineError(message string) {
	if s.Phase == PhaseSubmitting {
		return
	}
	s.Phase = PhaseIdle
	s.Error = message
}
