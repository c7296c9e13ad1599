package escrow

import "errors"

var (
	// ErrNotFound is returned for an unknown exchange code.
	ErrNotFound = errors.New("agreement not found")
	// ErrUnauthorizedAgent is returned when the agreement is bound to another agent.
	ErrUnauthorizedAgent = errors.New("agreement is assigned to a different agent")
	// ErrNotInitiator is returned when someone other than the initiator tries to cancel.
	ErrNotInitiator = errors.New("only the initiator can cancel the agreement")
	// ErrExpired is returned once the agreement's deadline has passed.
	ErrExpired = errors.New("agreement expired")
	// ErrNotFunded is returned when completing an agreement whose funds are not yet in escrow.
	ErrNotFunded = errors.New("agreement not funded")
	// ErrAlreadyFunded is returned when funding an agreement twice with different references.
	ErrAlreadyFunded = errors.New("agreement already funded")
	// ErrAlreadyCompleted is returned when verifying a completed agreement again.
	ErrAlreadyCompleted = errors.New("agreement already completed")
	// ErrCancelled is returned for any transition out of a cancelled agreement.
	ErrCancelled = errors.New("agreement cancelled")
	// ErrNotCancellable is returned when cancelling an agreement that has left pending.
	ErrNotCancellable = errors.New("agreement can no longer be cancelled")
	// ErrInvalidRequest is returned when create arguments fail validation.
	ErrInvalidRequest = errors.New("invalid agreement request")
	// ErrConflict is returned when a concurrent transition won and the loser cannot be classified further.
	ErrConflict = errors.New("agreement changed concurrently")
	// ErrCodeSpaceExhausted is returned when no unused exchange code could be generated.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique exchange code")
)
