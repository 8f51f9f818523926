// Package relay forwards notifications to a message broker.
//
// A relay is an ordinary NotificationHandler, so it is registered, decorated and dispatched
// like any other handler; the broker is only reached through a cqrs.NotificationPublisher
// such as the adapters under adapters/.
package relay
