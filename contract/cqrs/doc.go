/*
Package cqrs defines the message taxonomy and handler contracts shared by the mediator,
its decorators and the relay adapters. It holds no behavior of its own.
*/
package cqrs
