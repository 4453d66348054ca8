package errs

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("transition is invalid")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount is invalid")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptySelection    = errors.New("selection is empty")
	ErrDependencyFailed  = errors.New("dependency failed")
)

// ForbiddenError means the actor is not allowed to perform the action on the object.
type ForbiddenError struct {
	Action string
	Actor  string
	Cause  error
}

func NewForbiddenError(action, actor string) *ForbiddenError {
	return &ForbiddenError{Action: action, Actor: actor}
}

func NewForbiddenErrorWithCause(action, actor string, cause error) *ForbiddenError {
	return &ForbiddenError{Action: action, Actor: actor, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s may not %s (cause: %v)", ErrForbidden, e.Actor, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Actor, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError is returned when a status change is not in the transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError is returned when a concurrent writer won the race for the object.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %v)", ErrConflict, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrConflict, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

type InsufficientFundsError struct {
	AccountID string
	Balance   int64
	Amount    int64
}

func NewInsufficientFundsError(accountID string, balance, amount int64) *InsufficientFundsError {
	return &InsufficientFundsError{AccountID: accountID, Balance: balance, Amount: amount}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: account %s has %d, needs %d", ErrInsufficientFunds, e.AccountID, e.Balance, e.Amount)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

type InvalidAmountError struct {
	ParamName string
	Value     int64
	Min       int64
}

func NewInvalidAmountError(paramName string, value, min int64) *InvalidAmountError {
	return &InvalidAmountError{ParamName: paramName, Value: value, Min: min}
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s: %s is %d, min value is %d", ErrInvalidAmount, e.ParamName, e.Value, e.Min)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func NewInsufficientStockError(productID string, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type EmptySelectionError struct {
	ParamName string
}

func NewEmptySelectionError(paramName string) *EmptySelectionError {
	return &EmptySelectionError{ParamName: paramName}
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptySelection, e.ParamName)
}

func (e *EmptySelectionError) Unwrap() error {
	return ErrEmptySelection
}

// DependencyFailedError wraps failures of external collaborators such as the catalog.
type DependencyFailedError struct {
	Dependency string
	Cause      error
}

func NewDependencyFailedError(dependency string, cause error) *DependencyFailedError {
	return &DependencyFailedError{Dependency: dependency, Cause: cause}
}

func (e *DependencyFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrDependencyFailed, e.Dependency, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDependencyFailed, e.Dependency)
}

func (e *DependencyFailedError) Unwrap() error {
	return ErrDependencyFailed
}
