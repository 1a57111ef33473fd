// Package foundation holds small helpers shared by the configuration and CLI layers.
package foundation

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/versobench/internal/foundation/errors"
)

// FieldError is one validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Problems collects field errors so a caller can report all of them at once.
type Problems struct {
	errs []FieldError
}

// Add records a failure on field.
func (p *Problems) Add(field, format string, args ...any) {
	p.errs = append(p.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Require records a failure when value is blank.
func (p *Problems) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		p.Add(field, "must not be empty")
	}
}

// Errors returns the recorded failures.
func (p *Problems) Errors() []FieldError { return p.errs }

// Err returns nil when nothing was recorded, otherwise a single validation error
// listing every failure.
func (p *Problems) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(p.errs))
	for _, fe := range p.errs {
		messages = append(messages, fe.Error())
	}
	return errors.ValidationError(strings.Join(messages, "; ")).
		WithContext("fields", len(p.errs)).
		Build()
}
