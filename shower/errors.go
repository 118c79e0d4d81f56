package shower

import "errors"

var (
	// ErrEventRejected means the event could not be completed, for example
	// after too many failed commits. The caller may simply try again.
	ErrEventRejected = errors.New("shower: event rejected")
	// ErrEventVetoed means a user hook vetoed the event.
	ErrEventVetoed = errors.New("shower: event vetoed by hook")
	// ErrInconsistentSubsystem means the subsystem table no longer matches
	// the record. The event is unusable.
	ErrInconsistentSubsystem = errors.New("shower: inconsistent subsystem")
	// ErrConservation means a final conservation or validity check failed.
	ErrConservation = errors.New("shower: event check failed")
)
