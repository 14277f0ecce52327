package worker

import (
	"context"
	"errors"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/domain-detection-worker/internal/mq"
)

// dotSegmenter режет текст по точке.
type dotSegmenter struct{}

func (dotSegmenter) Split(_, text string) []string {
	return strings.SplitAfter(text, ".")
}

// stubClassifier возвращает одну и ту же метку на каждое предложение.
type stubClassifier struct {
	label int
	err   error
}

func (c *stubClassifier) Predict(_ context.Context, _ string, sentences []string) ([]int, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]int, len(sentences))
	for i := range out {
		out[i] = c.label
	}
	return out, nil
}

// fakeChannel реализует mq.Channel и запоминает опубликованные ответы.
type fakeChannel struct {
	mu         sync.Mutex
	published  []amqp.Publishing
	publishKey []string
	publishErr error

	deliveries chan amqp.Delivery
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{deliveries: make(chan amqp.Delivery, 4)}
}

func (f *fakeChannel) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(string, string, string, bool, amqp.Table) error { return nil }
func (f *fakeChannel) Qos(int, int, bool) error                                 { return nil }

func (f *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Cancel(string, bool) error { return nil }
func (f *fakeChannel) Close() error              { return nil }

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, msg)
	f.publishKey = append(f.publishKey, key)
	return nil
}

func (f *fakeChannel) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type fakeConnection struct {
	ch *fakeChannel
}

func (f *fakeConnection) Channel() (mq.Channel, error) { return f.ch, nil }

func (f *fakeConnection) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	return receiver
}

func (f *fakeConnection) Close() error { return nil }

// fakeDialer отдаёт одно соединение, затем ошибку.
type fakeDialer struct {
	mu   sync.Mutex
	conn *fakeConnection
}

func (f *fakeDialer) Dial(context.Context) (mq.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return nil, errors.New("broker unreachable")
	}
	conn := f.conn
	f.conn = nil
	return conn, nil
}

// fakeAcknowledger считает ack.
type fakeAcknowledger struct {
	mu    sync.Mutex
	acked int
	done  chan struct{}
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.mu.Lock()
	f.acked++
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return nil
}

func (f *fakeAcknowledger) Nack(uint64, bool, bool) error { return nil }
func (f *fakeAcknowledger) Reject(uint64, bool) error     { return nil }

func (f *fakeAcknowledger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acked
}

// fakeCounter отвечает на запрос числа классов модели.
type fakeCounter struct {
	n   int
	err error
}

func (f fakeCounter) NumLabels(context.Context) (int, error) {
	return f.n, f.err
}
