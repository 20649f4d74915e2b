package models

import "time"

// State is a node of the decision state machine
type State string

const (
	StateActiveHoursSuppressed State = "ACTIVE_HOURS_SUPPRESSED"
	StateBusy                  State = "BUSY"
	StateIdleBelowThreshold    State = "IDLE_BELOW_THRESHOLD"
	StateIdleEligible          State = "IDLE_ELIGIBLE"
	StateStopRequested         State = "STOP_REQUESTED"
	StateStopConfirmed         State = "STOP_CONFIRMED"
	StateStopFailed            State = "STOP_FAILED"
)

// Terminal reports whether an evaluation ends in this state
func (s State) Terminal() bool {
	switch s {
	case StateActiveHoursSuppressed, StateBusy, StateIdleBelowThreshold,
		StateStopConfirmed, StateStopFailed:
		return true
	}
	return false
}

// Action is the outcome of an evaluation
type Action string

const (
	ActionContinue Action = "CONTINUE"
	ActionStop     Action = "STOP"
)

// Decision is produced once per evaluation, logged and acted upon
type Decision struct {
	State        State
	Action       Action
	Reason       string
	IdleDuration time.Duration
	CPUPercent   float64 // CPU figure the decision was based on
	Connections  int
	Attempts     int // Stop attempts made, zero when no stop was requested
	EvaluatedAt  time.Time
}

// Stopped reports whether the decision resulted in a confirmed stop
func (d Decision) Stopped() bool {
	return d.Action == ActionStop
}
