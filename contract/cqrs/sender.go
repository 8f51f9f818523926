package cqrs

import "context"

// Sender is the non-generic part of the dispatch API.
//
// Result-bearing dispatch is exposed through generic helper functions in the mediator
// package, since Go methods cannot declare type parameters.
type Sender interface {
	SendCommand(ctx context.Context, cmd Command) error
	SendNotification(ctx context.Context, n Notification) error
}
