package mediator

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	berr "github.com/next-trace/scg-mediator/contract/errors"
)

type validationBehavior struct {
	v *validator.Validate
}

// Validation returns a Behavior that validates struct messages using their `validate`
// tags before invoking the handler. An invalid message is rejected with an error
// matching ErrValidationFailed and the handler is not called. A nil v uses a default
// validator.
func Validation(v *validator.Validate) Behavior {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}

	return &validationBehavior{v: v}
}

func (*validationBehavior) Name() string { return "validation" }

func (b *validationBehavior) Handle(ctx context.Context, call Call, next Next) (any, error) {
	if err := b.v.StructCtx(ctx, call.Message); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// not a struct; nothing to validate
			return next(ctx)
		}

		return nil, fmt.Errorf("validate %s: %w", call.MessageType(), errors.Join(berr.ErrValidationFailed, err))
	}

	return next(ctx)
}
