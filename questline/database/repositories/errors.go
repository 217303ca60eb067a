package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError means the request itself is malformed: bad quest
// reference, bad group code, wrong command shape for the quest category.
type ValidationError struct {
	Field        string
	Message      string
	InvalidCodes []string
}

func (ve *ValidationError) Error() string {
	if len(ve.InvalidCodes) > 0 {
		return fmt.Sprintf("%s: unknown or inactive group code(s) %s", ve.Message, strings.Join(ve.InvalidCodes, ", "))
	}
	if ve.Field != "" {
		return fmt.Sprintf("invalid %s: %s", ve.Field, ve.Message)
	}
	return ve.Message
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// ConflictKind distinguishes why the quest slot is taken.
type ConflictKind string

const (
	ConflictAlreadyCompleted ConflictKind = "already_completed"
	ConflictAlreadyPending   ConflictKind = "already_pending"
)

// ConflictError means a duplicate or overlapping active submission
// blocks the request. It carries enough detail for the actor to
// self-correct: who holds the slot, or which group codes overlap.
type ConflictError struct {
	Kind             ConflictKind
	SubmissionID     int64
	ConflictingUser  string   // username of the blocking submitter, "" for the actor themselves
	Partner          bool     // the blocking submission belongs to the actor's partner
	ConflictingCodes []string // overlapping group codes, set for group conflicts only
}

func (ce *ConflictError) Error() string {
	if len(ce.ConflictingCodes) > 0 {
		codes := strings.Join(ce.ConflictingCodes, ", ")
		if ce.Kind == ConflictAlreadyCompleted {
			return fmt.Sprintf("quest already completed by group %s", codes)
		}
		return fmt.Sprintf("a submission is pending review for group %s", codes)
	}
	if ce.Partner {
		who := ce.ConflictingUser
		if who == "" {
			who = "your partner"
		} else {
			who = "your partner " + who
		}
		if ce.Kind == ConflictAlreadyCompleted {
			return fmt.Sprintf("quest already completed by %s", who)
		}
		return fmt.Sprintf("a submission by %s is already pending review", who)
	}
	if ce.Kind == ConflictAlreadyCompleted {
		return "you already completed this quest"
	}
	return "your submission for this quest is already pending review"
}

// TransactionError means the atomic write failed for infrastructure
// reasons. No partial state is persisted, so retrying is safe.
type TransactionError struct {
	Op  string
	Err error
}

func (te *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed during %s: %v", te.Op, te.Err)
}

func (te *TransactionError) Unwrap() error {
	return te.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// AsConflict extracts the ConflictError, if any.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransaction checks if an error is a TransactionError
func IsTransaction(err error) bool {
	var te *TransactionError
	return errors.As(err, &te)
}
