package relay

import "errors"

var (
	ErrValidation   = errors.New("invalid chat request")
	ErrUnknownModel = errors.New("unknown model")
)

const (
	msgRequired     = "Prompt and model are required"
	msgInvalidModel = "Invalid model selection"
)

// ValidationError indica prompt ou model ausentes
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return msgRequired
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnknownModelError indica uma tag sem adapter registrado
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return msgInvalidModel
}

func (e *UnknownModelError) Is(target error) bool {
	return target == ErrUnknownModel
}
