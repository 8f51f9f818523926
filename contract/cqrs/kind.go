package cqrs

// Kind identifies which of the five message variants a dispatch belongs to.
type Kind uint8

const (
	KindCommand Kind = iota + 1
	KindCommandResult
	KindQuery
	KindNotification
	KindNotificationResult
)

// Tag returns the log tag for the variant: COMMAND, QUERY or NOTIFICATION.
func (k Kind) Tag() string {
	switch k {
	case KindCommand, KindCommandResult:
		return "COMMAND"
	case KindQuery:
		return "QUERY"
	case KindNotification, KindNotificationResult:
		return "NOTIFICATION"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindCommandResult:
		return "command_result"
	case KindQuery:
		return "query"
	case KindNotification:
		return "notification"
	case KindNotificationResult:
		return "notification_result"
	default:
		return "unknown"
	}
}

// HasResult reports whether handlers of this variant return a value.
func (k Kind) HasResult() bool {
	return k == KindCommandResult || k == KindQuery || k == KindNotificationResult
}
