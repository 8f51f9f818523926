/*
Package mediator routes commands, queries and notifications to exactly one registered handler.

Handlers are bound to a Registry under a Contract (variant, message type and result type).
Cross-cutting behaviors such as logging, validation and tracing are applied by wrapping the
registered handler in a decorator that implements the same contract. Registration and
decoration happen once at startup; after Seal the Registry is read-only and safe to share
between goroutines.

A Sender dispatches a message by looking up the contract for its runtime type:

	reg := mediator.NewRegistry(logger)
	err := mediator.Setup(reg, []mediator.Handler{
		mediator.Command[CreateUser](CreateUserHandler{}),
		mediator.Query[GetUser, User](GetUserHandler{}),
	}, mediator.WithBehaviors(mediator.Logging(logger)))

	s := mediator.NewSender(reg, logger)
	err = s.SendCommand(ctx, CreateUser{CommandBase: cqrs.NewCommand(), UserName: "Alice"})
	u, err := mediator.SendQuery[User](ctx, s, GetUser{QueryBase: cqrs.NewQuery[User](), ID: 1})
*/
package mediator
