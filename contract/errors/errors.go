package errors

// Error codes for the mediator contracts. Keep stable; used across the registry, sender and adapters.
const (
	ErrCodeHandlerNotFound     = "mediator.handler_not_found"
	ErrCodeHandlerExists       = "mediator.handler_exists"
	ErrCodeHandlerTypeMismatch = "mediator.handler_type_mismatch"
	ErrCodeDecorationConflict  = "mediator.decoration_conflict"
	ErrCodeRegistrySealed      = "mediator.registry_sealed"
	ErrCodeNilMessage          = "mediator.nil_message"
	ErrCodeValidationFailed    = "mediator.validation_failed"
	ErrCodePublishFailed       = "mediator.publish_failed"
	ErrCodeSerializationFailed = "mediator.serialization_failed"
)

// Code returns an error value that carries only a code string.
// It implements error by returning the code string in Error().
func Code(code string) error { return codedError(code) }

type codedError string

func (e codedError) Error() string { return string(e) }

// Handler errors have no sentinel; they reach the caller unchanged.
var (
	ErrHandlerNotFound     = Code(ErrCodeHandlerNotFound)
	ErrHandlerExists       = Code(ErrCodeHandlerExists)
	ErrHandlerTypeMismatch = Code(ErrCodeHandlerTypeMismatch)
	ErrDecorationConflict  = Code(ErrCodeDecorationConflict)
	ErrRegistrySealed      = Code(ErrCodeRegistrySealed)
	ErrNilMessage          = Code(ErrCodeNilMessage)
	ErrValidationFailed    = Code(ErrCodeValidationFailed)
	ErrPublishFailed       = Code(ErrCodePublishFailed)
	ErrSerializationFailed = Code(ErrCodeSerializationFailed)
)
