package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/domain-detection-worker/internal/detector"
	"github.com/shaiso/domain-detection-worker/internal/health"
	"github.com/shaiso/domain-detection-worker/internal/mq"
	"github.com/shaiso/domain-detection-worker/internal/telemetry"
)

// Worker принимает запросы на определение домена из RabbitMQ и отвечает на них.
//
// Worker — stateless компонент: несколько экземпляров с одинаковым набором
// языков потребляют из одной очереди и конкурируют за сообщения.
type Worker struct {
	detector     *detector.Detector
	defaultLabel string

	consumer *mq.Consumer
	health   *health.State

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// Config — конфигурация Worker.
type Config struct {
	Detector *detector.Detector

	// DefaultLabel — домен в ответе, если запрос обработать не удалось.
	DefaultLabel string

	// MQ
	Dialer         mq.Dialer
	Topology       mq.Topology
	ConnectionName string
	ReconnectDelay time.Duration // пауза между попытками (default: 5s)

	// Health — состояние для проб (опционально).
	Health *health.State

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	state := cfg.Health
	if state == nil {
		state = health.NewState()
	}

	w := &Worker{
		detector:     cfg.Detector,
		defaultLabel: cfg.DefaultLabel,
		health:       state,
		logger:       logger,
	}

	w.consumer = mq.NewConsumer(mq.ConsumerConfig{
		Dialer:     cfg.Dialer,
		Topology:   cfg.Topology,
		Handler:    w.HandleDelivery,
		Observer:   &connectionObserver{health: state},
		RetryDelay: cfg.ReconnectDelay,
		Name:       cfg.ConnectionName,
		Logger:     logger,
	})

	return w
}

// Start запускает цикл потребления в отдельной горутине.
//
// Флаг alive выставлен, пока цикл выполняется, в том числе без соединения.
func (w *Worker) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	w.health.SetAlive(true)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.health.SetAlive(false)

		if err := w.consumer.Run(ctx); err != nil {
			w.logger.Error("consumer error", "error", err)
		}
	}()

	w.logger.Info("worker started", "consumer_tag", w.consumer.Tag())
	return nil
}

// Stop останавливает Worker и ждёт завершения текущего сообщения.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker...")

	if w.cancelFunc != nil {
		w.cancelFunc()
	}

	w.wg.Wait()

	w.health.SetConnected(false)
	w.logger.Info("worker stopped")
}

// Health возвращает состояние для проб.
func (w *Worker) Health() health.Reader {
	return w.health
}

// connectionObserver переносит состояние соединения в пробы и метрики.
type connectionObserver struct {
	health *health.State
}

func (o *connectionObserver) Connected() {
	o.health.SetConnected(true)
	telemetry.BrokerConnected.Set(1)
}

func (o *connectionObserver) Disconnected(error) {
	o.health.SetConnected(false)
	telemetry.BrokerConnected.Set(0)
	telemetry.ConnectionFailures.Inc()
}
