/*
Package rabbitmq publishes relayed notifications to RabbitMQ.
It maps notifications to AMQP messages on a topic exchange and includes an
auto-reconnecting publisher.
*/
package rabbitmq
