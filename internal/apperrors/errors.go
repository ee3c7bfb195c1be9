package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Ошибки хранилища
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Ошибки бизнес-логики
var (
	ErrValidation            = errors.New("validation error")
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrAuctionNotActive      = errors.New("auction not active")
	ErrBidTooLow             = errors.New("bid too low")
	ErrAlreadySettled        = errors.New("auction already settled")
	ErrReferencedEntityInUse = errors.New("referenced entity in use")
)

// Ошибки доступа
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError содержит ошибки по полям запроса.
// errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Fields map[string]string
}

// Invalid создает ValidationError для одного поля
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
