package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mpdash/internal/common"
)

var (
	ErrIncorrectCredentials = fmt.Errorf("incorrect credentials: %w", common.ErrorUnauthorized)
	ErrInactiveUser         = fmt.Errorf("inactive user: %w", common.ErrorValidation)
	ErrUserExists           = fmt.Errorf("user already exists: %w", common.ErrorAlreadyExists)
	ErrUserNotFound         = fmt.Errorf("user: %w", common.ErrorNotFound)
	ErrProductTracked       = fmt.Errorf("product is already tracked: %w", common.ErrorAlreadyExists)
	ErrProductNotFound      = fmt.Errorf("product: %w", common.ErrorNotFound)
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field string
	Msg   string
}

// ValidationError lists every rejected field of a request.
type ValidationError []FieldError

func (v ValidationError) Error() string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = f.Field + ": " + f.Msg
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (v ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}

func required(fields map[string]string, order ...string) error {
	var v ValidationError
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			v = append(v, FieldError{Field: name, Msg: "field required"})
		}
	}
	if len(v) > 0 {
		return v
	}
	return nil
}
