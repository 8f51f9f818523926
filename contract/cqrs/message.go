package cqrs

import "github.com/google/uuid"

// Message is implemented by every command, query and notification.
// The correlation id relates the log records of a single dispatch.
type Message interface {
	CorrelationID() uuid.UUID
}

// Command is a state-changing request without a result.
// A command should have a single handler.
type Command interface {
	Message
	IsCommand()
}

// CommandWithResult is a state-changing request yielding R.
type CommandWithResult[R any] interface {
	Message
	IsCommandWithResult(*R)
}

// Query is a side-effect-free read yielding R.
type Query[R any] interface {
	Message
	IsQuery(*R)
}

// Notification is an event without a result.
type Notification interface {
	Message
	IsNotification()
}

// NotificationWithResult is an event whose single handler yields R.
type NotificationWithResult[R any] interface {
	Message
	IsNotificationWithResult(*R)
}

// Meta carries the correlation id. Each base type embeds its own Meta, so a struct
// embedding two bases gets an ambiguous CorrelationID and satisfies no message interface.
type Meta struct {
	ID uuid.UUID `json:"correlation_id"`
}

// NewMeta returns a Meta with a fresh correlation id.
func NewMeta() Meta { return Meta{ID: uuid.New()} }

func (m Meta) CorrelationID() uuid.UUID { return m.ID }

// CommandBase is embedded by command types.
//
//	type CreateUser struct {
//	    cqrs.CommandBase
//	    UserName string
//	}
//
//	cmd := CreateUser{CommandBase: cqrs.NewCommand(), UserName: "Alice"}
type CommandBase struct{ Meta }

func (CommandBase) IsCommand() {}

// NewCommand returns a CommandBase with a fresh correlation id.
func NewCommand() CommandBase { return CommandBase{Meta: NewMeta()} }

// CommandBaseOf is embedded by command types that yield R.
type CommandBaseOf[R any] struct{ Meta }

func (CommandBaseOf[R]) IsCommandWithResult(*R) {}

func NewCommandOf[R any]() CommandBaseOf[R] { return CommandBaseOf[R]{Meta: NewMeta()} }

// QueryBase is embedded by query types that yield R.
type QueryBase[R any] struct{ Meta }

func (QueryBase[R]) IsQuery(*R) {}

func NewQuery[R any]() QueryBase[R] { return QueryBase[R]{Meta: NewMeta()} }

// NotificationBase is embedded by notification types.
type NotificationBase struct{ Meta }

func (NotificationBase) IsNotification() {}

func NewNotification() NotificationBase { return NotificationBase{Meta: NewMeta()} }

// NotificationBaseOf is embedded by notification types that yield R.
type NotificationBaseOf[R any] struct{ Meta }

func (NotificationBaseOf[R]) IsNotificationWithResult(*R) {}

func NewNotificationOf[R any]() NotificationBaseOf[R] {
	return NotificationBaseOf[R]{Meta: NewMeta()}
}
