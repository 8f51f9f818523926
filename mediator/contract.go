package mediator

import (
	"fmt"
	"reflect"

	"github.com/next-trace/scg-mediator/contract/cqrs"
)

// Contract identifies a handler slot in the Registry: the message variant, the concrete
// message type and, for result-bearing variants, the result type.
type Contract struct {
	Kind    cqrs.Kind
	Message reflect.Type
	Result  reflect.Type
}

// CommandContract returns the contract of CommandHandler[C].
func CommandContract[C cqrs.Command]() Contract {
	return Contract{Kind: cqrs.KindCommand, Message: reflect.TypeFor[C]()}
}

// CommandResultContract returns the contract of CommandResultHandler[C, R].
func CommandResultContract[C cqrs.CommandWithResult[R], R any]() Contract {
	return Contract{Kind: cqrs.KindCommandResult, Message: reflect.TypeFor[C](), Result: reflect.TypeFor[R]()}
}

// QueryContract returns the contract of QueryHandler[Q, R].
func QueryContract[Q cqrs.Query[R], R any]() Contract {
	return Contract{Kind: cqrs.KindQuery, Message: reflect.TypeFor[Q](), Result: reflect.TypeFor[R]()}
}

// NotificationContract returns the contract of NotificationHandler[N].
func NotificationContract[N cqrs.Notification]() Contract {
	return Contract{Kind: cqrs.KindNotification, Message: reflect.TypeFor[N]()}
}

// NotificationResultContract returns the contract of NotificationResultHandler[N, R].
func NotificationResultContract[N cqrs.NotificationWithResult[R], R any]() Contract {
	return Contract{
		Kind:    cqrs.KindNotificationResult,
		Message: reflect.TypeFor[N](),
		Result:  reflect.TypeFor[R](),
	}
}

// String renders the contract as the handler interface it names, e.g.
// "QueryHandler[main.GetUser, main.User]".
func (c Contract) String() string {
	if c.Result == nil {
		return fmt.Sprintf("%s[%s]", handlerName(c.Kind), typeString(c.Message))
	}

	return fmt.Sprintf("%s[%s, %s]", handlerName(c.Kind), typeString(c.Message), typeString(c.Result))
}

func handlerName(k cqrs.Kind) string {
	switch k {
	case cqrs.KindCommand:
		return "CommandHandler"
	case cqrs.KindCommandResult:
		return "CommandResultHandler"
	case cqrs.KindQuery:
		return "QueryHandler"
	case cqrs.KindNotification:
		return "NotificationHandler"
	case cqrs.KindNotificationResult:
		return "NotificationResultHandler"
	default:
		return "Handler"
	}
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

// typeName returns the package-qualified type name of v, used in log records.
func typeName(v any) string {
	return typeString(reflect.TypeOf(v))
}
