package apperror

import (
	"errors"
	"fmt"
)

// Kind - вид нарушенного инварианта
type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindAlreadyExists        Kind = "ALREADY_EXISTS"
	KindInvalidID            Kind = "INVALID_ID"
	KindReferentialViolation Kind = "REFERENTIAL_VIOLATION"
	KindInvalidInput         Kind = "INVALID_INPUT"
)

// Сентинелы для errors.Is
var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrInvalidID            = errors.New("invalid id")
	ErrReferentialViolation = errors.New("referential violation")
	ErrInvalidInput         = errors.New("invalid input")
)

// Error - типизированная ошибка операции; гейтвей сам решает, как ее показать
type Error struct {
	Kind    Kind
	Entity  string // user, post, comment
	ID      string // пусто, если ошибка не про конкретный документ
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is позволяет errors.Is(err, apperror.ErrNotFound) и т.п.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindInvalidID:
		return ErrInvalidID
	case KindReferentialViolation:
		return ErrReferentialViolation
	case KindInvalidInput:
		return ErrInvalidInput
	}
	return nil
}

func NotFound(entity, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

func AlreadyExists(entity, message string) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Entity:  entity,
		Message: message,
	}
}

func InvalidID(entity, id string) *Error {
	return &Error{
		Kind:    KindInvalidID,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("invalid %s id format: %q", entity, id),
	}
}

func ReferentialViolation(entity, id, message string) *Error {
	return &Error{
		Kind:    KindReferentialViolation,
		Entity:  entity,
		ID:      id,
		Message: message,
	}
}

func InvalidInput(entity string, err error) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Entity:  entity,
		Message: fmt.Sprintf("invalid %s input", entity),
		Err:     err,
	}
}

// KindOf возвращает вид ошибки или пустую строку для нетипизированных (внутренних) ошибок
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
