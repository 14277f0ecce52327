package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Заголовки запроса и ответа.
const (
	HeaderRequestID         = "RequestId"
	HeaderReturnMessageType = "ReturnMessageType"
	HeaderMessageType       = "MT-MessageType"
)

// Delivery — контекст одного доставленного сообщения.
//
// Живёт от получения сообщения до публикации ответа и ack.
type Delivery struct {
	CorrelationID string
	ReplyTo       string
	Headers       amqp.Table
	Body          []byte

	raw amqp.Delivery
	ch  Channel
}

// NewDelivery оборачивает доставку amqp; ch — канал, через который публикуется ответ.
func NewDelivery(ch Channel, raw amqp.Delivery) *Delivery {
	return &Delivery{
		CorrelationID: raw.CorrelationId,
		ReplyTo:       raw.ReplyTo,
		Headers:       raw.Headers,
		Body:          raw.Body,
		raw:           raw,
		ch:            ch,
	}
}

// RequestID возвращает заголовок RequestId запроса.
func (d *Delivery) RequestID() string {
	return headerString(d.Headers, HeaderRequestID)
}

// ReplyHeaders — заголовки ответа: RequestId и MT-MessageType,
// скопированные из RequestId и ReturnMessageType запроса.
// Отсутствующие в запросе заголовки пропускаются.
func (d *Delivery) ReplyHeaders() amqp.Table {
	headers := amqp.Table{}
	if v, ok := d.Headers[HeaderRequestID]; ok {
		headers[HeaderRequestID] = v
	}
	if v, ok := d.Headers[HeaderReturnMessageType]; ok {
		headers[HeaderMessageType] = v
	}
	return headers
}

// Reply публикует ответ в очередь reply-to с тем же correlation id.
func (d *Delivery) Reply(ctx context.Context, body []byte) error {
	if d.ReplyTo == "" {
		return ErrNoReplyTo
	}
	return publishReply(ctx, d.ch, d.ReplyTo, d.CorrelationID, d.ReplyHeaders(), body)
}

// Ack подтверждает обработку сообщения.
func (d *Delivery) Ack() error {
	return d.raw.Ack(false)
}

func headerString(headers amqp.Table, key string) string {
	v, ok := headers[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
