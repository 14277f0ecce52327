package mq

import (
	"context"
	"errors"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type binding struct {
	queue, key, exchange string
}

type fakeChannel struct {
	mu sync.Mutex

	exchanges  []string
	kinds      []string
	queues     []string
	bindings   []binding
	prefetch   int
	consumeTag string
	cancelled  bool
	closed     bool
	published  []amqp.Publishing
	publishKey []string

	deliveries chan amqp.Delivery

	declareErr error
	publishErr error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{deliveries: make(chan amqp.Delivery, 16)}
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.declareErr != nil {
		return f.declareErr
	}
	f.exchanges = append(f.exchanges, name)
	f.kinds = append(f.kinds, kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings = append(f.bindings, binding{queue: name, key: key, exchange: exchange})
	return nil
}

func (f *fakeChannel) Qos(prefetchCount, _ int, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefetch = prefetchCount
	return nil
}

func (f *fakeChannel) Consume(_, consumer string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumeTag = consumer
	return f.deliveries, nil
}

func (f *fakeChannel) Cancel(string, bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = true
	return nil
}

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

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeConnection struct {
	ch *fakeChannel

	mu       sync.Mutex
	closed   bool
	notifyCh chan *amqp.Error
}

func (f *fakeConnection) Channel() (Channel, error) {
	return f.ch, nil
}

func (f *fakeConnection) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifyCh = receiver
	return receiver
}

func (f *fakeConnection) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeDialer отдаёт ошибку первые failures раз, затем соединения по очереди.
type fakeDialer struct {
	mu       sync.Mutex
	failures int
	conns    []*fakeConnection
	dials    int
}

var errBrokerDown = errors.New("broker unreachable")

func (f *fakeDialer) Dial(context.Context) (Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dials++
	if f.failures > 0 {
		f.failures--
		return nil, errBrokerDown
	}
	if len(f.conns) == 0 {
		return nil, errBrokerDown
	}
	conn := f.conns[0]
	f.conns = f.conns[1:]
	return conn, nil
}

func (f *fakeDialer) dialCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dials
}

// recordingObserver запоминает переходы состояния соединения.
type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) Connected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "connected")
}

func (r *recordingObserver) Disconnected(error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "disconnected")
}

func (r *recordingObserver) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// fakeAcknowledger считает ack/nack.
type fakeAcknowledger struct {
	mu    sync.Mutex
	acked []uint64
	onAck func(tag uint64)
}

func (f *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	f.acked = append(f.acked, tag)
	onAck := f.onAck
	f.mu.Unlock()
	if onAck != nil {
		onAck(tag)
	}
	return nil
}

func (f *fakeAcknowledger) Nack(uint64, bool, bool) error { return nil }
func (f *fakeAcknowledger) Reject(uint64, bool) error     { return nil }

func (f *fakeAcknowledger) ackCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.acked)
}
