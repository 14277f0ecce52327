package mq

import "errors"

// Ошибки MQ.
var (
	// ErrConnectionClosed — брокер закрыл соединение.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrDeliveriesClosed — канал доставки закрыт (канал или соединение упали).
	ErrDeliveriesClosed = errors.New("deliveries channel closed")

	// ErrNoReplyTo — у запроса нет адреса для ответа.
	ErrNoReplyTo = errors.New("no reply_to in request")
)
