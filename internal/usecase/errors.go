package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeDuplicateEventID   = "DUPLICATE_EVENT_ID"
	CodeNotFound           = "NOT_FOUND"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeDatabase           = "DATABASE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError is a rejection the caller can fix: bad input, unknown record, duplicate key.
type DomainError struct {
	Code    string
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}

// TechnicalError is an infrastructure failure.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var t *TechnicalError
	return errors.As(err, &t)
}

// ErrorCode extracts the code of a domain or technical error, INTERNAL_ERROR otherwise.
func ErrorCode(err error) string {
	var d *DomainError
	if errors.As(err, &d) {
		return d.Code
	}
	var t *TechnicalError
	if errors.As(err, &t) {
		return t.Code
	}
	return CodeInternal
}

func missingField(field string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "Missing required field: " + field,
		Field:   field,
	}
}

func invalidStatus(raw string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidStatus,
		Message: fmt.Sprintf("Invalid status %q. Must be one of: %s", raw, entity.StatusList()),
		Field:   "status",
	}
}

func notFound(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

// mapRepositoryError turns repository sentinels into domain errors.
func mapRepositoryError(err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, entity.ErrQuestionnaireNotFound):
		return notFound(notFoundMessage)
	case errors.Is(err, entity.ErrEventIDAlreadyExists):
		return &DomainError{
			Code:    CodeDuplicateEventID,
			Message: "A questionnaire with this event ID already exists",
			Field:   "eventId",
		}
	}
	return &TechnicalError{
		Code:    CodeDatabase,
		Message: "database operation failed",
		Err:     err,
	}
}
