package core

import (
	"context"
	"errors"
)

// ErrTextServiceUnavailable is returned when the upstream text generation
// API cannot be reached or rejects the call.
var ErrTextServiceUnavailable = errors.New("text generation service unavailable")

// TextService is any service that can expand an assembled prompt into a
// ready-to-publish post body. Implementations submit the prompt together
// with a strict single-field output schema and must return either the
// expanded text or the failure unchanged.
type TextService interface {
	Expand(ctx context.Context, prompt string) (string, error)
}
