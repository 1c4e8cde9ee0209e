package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Posting and reporting failure taxonomy.
var (
	// ErrInvalidLine indicates a posting line with both or neither side set,
	// a negative amount, or an unknown/inactive account.
	ErrInvalidLine = errors.New("invalid posting line")

	// ErrDuplicateCode indicates an account code that already exists for the tenant.
	ErrDuplicateCode = errors.New("account code already exists")

	// ErrProtectedAccount indicates an attempt to delete or deactivate a system account.
	ErrProtectedAccount = errors.New("system account cannot be deleted")

	// ErrLedgerIntegrity indicates a report detected an unbalanced ledger.
	// This must never occur if every voucher went through the posting engine;
	// it is surfaced to operators as a data-integrity alert, not a user error.
	ErrLedgerIntegrity = errors.New("ledger integrity violation")

	// ErrSequenceCollision indicates concurrent postings produced the same
	// voucher number and retries were exhausted.
	ErrSequenceCollision = errors.New("voucher number collision")
)

// ErrUnbalancedEntry is the sentinel matched by errors.Is for UnbalancedEntryError values.
var ErrUnbalancedEntry = errors.New("journal entry not balanced")

// UnbalancedEntryError is returned when a posting request's debits and
// credits differ beyond the accepted tolerance. It carries both totals so the
// caller can see how far off the request was.
type UnbalancedEntryError struct {
	DebitTotal  string
	CreditTotal string
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry not balanced: debit total %s, credit total %s", e.DebitTotal, e.CreditTotal)
}

func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrUnbalancedEntry
}

// AppError wraps an underlying error with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
