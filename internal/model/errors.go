package model

import (
	"errors"
	"fmt"
)

var (
	// ErrStore matches every connectivity or query failure at the store.
	ErrStore = errors.New("store failure")

	ErrDuplicateItem  = errors.New("an item with this serial number already exists")
	ErrBillNotFound   = errors.New("bill not found")
	ErrEmptyBill      = errors.New("enter a quantity for at least one item")
	ErrNothingToPrint = errors.New("no receipt to print")
	ErrPrint          = errors.New("failed to print receipt")
)

// StoreError carries the failing data access operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// ValidationError names the input field that stopped an operation before
// anything was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
