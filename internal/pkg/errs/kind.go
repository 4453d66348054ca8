package errs

import "errors"

// Kind is the stable, client-facing classification of an error.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation"
	KindForbidden         Kind = "forbidden"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindInvalidAmount     Kind = "invalid_amount"
	KindInsufficientStock Kind = "insufficient_stock"
	KindEmptySelection    Kind = "empty_selection"
	KindDependencyFailed  Kind = "dependency_failed"
	KindInternal          Kind = "internal"
)

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrObjectNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrConflict, KindConflict},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrInsufficientStock, KindInsufficientStock},
	{ErrEmptySelection, KindEmptySelection},
	{ErrDependencyFailed, KindDependencyFailed},
	{ErrValueIsRequired, KindValidation},
	{ErrValueIsInvalid, KindValidation},
	{ErrValueIsOutOfRange, KindValidation},
	{ErrVersionIsInvalid, KindValidation},
}

// KindOf classifies err. When an error joins several kinds the first match in
// the table above wins, so domain kinds take precedence over plain validation.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindInternal
}
