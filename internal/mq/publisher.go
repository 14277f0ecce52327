package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ContentTypeJSON — тип содержимого ответов.
const ContentTypeJSON = "application/json"

// publishReply публикует ответ через default exchange в очередь replyTo.
func publishReply(ctx context.Context, ch Channel, replyTo, correlationID string, headers amqp.Table, body []byte) error {
	err := ch.PublishWithContext(
		ctx,
		"",      // default exchange
		replyTo, // routing key = имя очереди ответа
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   ContentTypeJSON,
			CorrelationId: correlationID,
			Headers:       headers,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish reply to %s: %w", replyTo, err)
	}
	return nil
}
