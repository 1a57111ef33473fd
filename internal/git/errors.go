package git

import (
	"strings"

	"git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/logfields"
)

// ClassifyGitError translates go-git errors into checkout ClassifiedErrors, keeping
// the operation and URL as context.
func ClassifyGitError(err error, op string, url string) error {
	if err == nil {
		return nil
	}

	// Already classified
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())
	builder := errors.CheckoutError("git " + op + " failed").
		WithCause(err).
		WithContext("op", op).
		WithContext(logfields.KeyURL, url)

	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "not authorized") || strings.Contains(l, "invalid credentials"):
		builder.WithContext("reason", "auth")
	case strings.Contains(l, "repository not found") || strings.Contains(l, "repository does not exist"):
		builder.WithContext("reason", "not_found")
	case strings.Contains(l, "reference not found") || strings.Contains(l, "object not found"):
		builder.WithContext("reason", "unknown_revision")
	case strings.Contains(l, "timeout") || strings.Contains(l, "connection reset") || strings.Contains(l, "no route to host"):
		builder.WithContext("reason", "network")
	}

	return builder.Build()
}
