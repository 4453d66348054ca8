// Package errs holds the error vocabulary of the marketplace.
//
// Every error type carries the offending parameter and an optional cause, and
// unwraps to a package sentinel so callers match with errors.Is and read
// details with errors.As:
//
//	if errors.Is(err, errs.ErrInsufficientFunds) { ... }
//
//	var conflict *errs.ConflictError
//	if errors.As(err, &conflict) { ... }
//
// Validation kinds (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange,
// VersionIsInvalid) come from constructors. Domain kinds (Forbidden,
// InvalidTransition, Conflict, InsufficientFunds, InvalidAmount,
// InsufficientStock, EmptySelection) come from aggregates and use cases.
// DependencyFailed wraps failures of remote collaborators.
//
// KindOf maps any of them, joined errors included, to the Kind reported to
// API clients.
package errs
