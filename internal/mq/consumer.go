package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultRetryDelay — фиксированная пауза между попытками переподключения.
const DefaultRetryDelay = 5 * time.Second

// prefetch — не больше одного неподтверждённого сообщения на соединение.
const prefetch = 1

// Handler обрабатывает одно сообщение. Обязан сам подтвердить доставку
// и не должен паниковать.
type Handler func(ctx context.Context, d *Delivery)

// Observer получает уведомления о состоянии соединения.
type Observer interface {
	Connected()
	Disconnected(err error)
}

type nopObserver struct{}

func (nopObserver) Connected()         {}
func (nopObserver) Disconnected(error) {}

// Consumer — супервизор соединения с брокером.
//
// Цикл: connect → declare topology → qos(1) → consume → (ошибка) → пауза → сначала.
// Число попыток не ограничено, пауза фиксирована. Сообщения обрабатываются
// строго последовательно в той же горутине, что читает доставки.
type Consumer struct {
	dialer     Dialer
	topology   Topology
	handler    Handler
	observer   Observer
	retryDelay time.Duration
	tag        string
	logger     *slog.Logger
}

// ConsumerConfig — конфигурация Consumer.
type ConsumerConfig struct {
	Dialer   Dialer
	Topology Topology
	Handler  Handler

	// Observer — получатель событий connected/disconnected (опционально).
	Observer Observer

	// RetryDelay — пауза перед переподключением (default: 5s).
	RetryDelay time.Duration

	// Name — префикс consumer tag (обычно имя соединения).
	Name string

	Logger *slog.Logger
}

// NewConsumer создаёт новый Consumer.
func NewConsumer(cfg ConsumerConfig) *Consumer {
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.Name
	if name == "" {
		name = "consumer"
	}

	return &Consumer{
		dialer:     cfg.Dialer,
		topology:   cfg.Topology,
		handler:    cfg.Handler,
		observer:   observer,
		retryDelay: retryDelay,
		tag:        name + "-" + uuid.NewString(),
		logger:     logger,
	}
}

// Tag возвращает consumer tag.
func (c *Consumer) Tag() string {
	return c.tag
}

// Run держит соединение и потребляет сообщения до отмены ctx.
// При отмене закрывает канал и соединение и возвращает nil.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		err := c.session(ctx)
		if ctx.Err() != nil {
			c.logger.Info("consumer stopped", "queue", c.topology.Queue)
			return nil
		}

		c.observer.Disconnected(err)
		c.logger.Error("broker connection failed", "queue", c.topology.Queue, "error", err)
		c.logger.Info("trying to reconnect", "delay", c.retryDelay)

		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped", "queue", c.topology.Queue)
			return nil
		case <-time.After(c.retryDelay):
		}
	}
}

// session — один цикл жизни соединения. Возвращает nil только при отмене ctx.
func (c *Consumer) session(ctx context.Context) error {
	conn, err := c.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			c.logger.Debug("close connection", "error", err)
		}
	}()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() {
		if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			c.logger.Debug("close channel", "error", err)
		}
	}()

	if err := c.topology.Declare(ch); err != nil {
		return err
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(
		string(c.topology.Queue), // queue
		c.tag,                    // consumer tag
		false,                    // auto-ack (ack вручную)
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,                      // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.topology.Queue, err)
	}

	c.observer.Connected()
	c.logger.Info("ready to process requests",
		"queue", c.topology.Queue,
		"exchange", c.topology.Exchange,
		"routing_keys", c.topology.RoutingKeys,
		"consumer_tag", c.tag,
	)

	// Обработка сообщения не прерывается отменой: остановка проверяется между сообщениями.
	handlerCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			if err := ch.Cancel(c.tag, false); err != nil {
				c.logger.Debug("cancel consumer", "error", err)
			}
			return nil

		case amqpErr, ok := <-closed:
			if !ok || amqpErr == nil {
				return ErrConnectionClosed
			}
			return fmt.Errorf("%w: %v", ErrConnectionClosed, amqpErr)

		case raw, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handler(handlerCtx, NewDelivery(ch, raw))
		}
	}
}
