package storage

import "errors"

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a create would overwrite an existing record.
var ErrAlreadyExists = errors.New("already exists")

// ErrConditionFailed is returned when a conditional write was rejected because
// the stored record no longer matches the expected state.
var ErrConditionFailed = errors.New("condition failed")

// ErrInsufficientFunds is returned when a wallet has an insufficient balance for a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")
