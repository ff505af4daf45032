package services

import (
	"errors"
	"sort"
	"strings"
)

var ErrBadCreds = errors.New("invalid email or password")

// ValidationError carries per-field messages from a failed form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid " + strings.Join(names, ", ")
}

func invalid(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
