package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/domain-detection-worker/internal/classifier"
	"github.com/shaiso/domain-detection-worker/internal/config"
	"github.com/shaiso/domain-detection-worker/internal/detector"
	"github.com/shaiso/domain-detection-worker/internal/health"
	"github.com/shaiso/domain-detection-worker/internal/mq"
	"github.com/shaiso/domain-detection-worker/internal/telemetry"
	"github.com/shaiso/domain-detection-worker/internal/worker"
)

const (
	labelsCheckTimeout = 10 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// run собирает компоненты и держит воркер до сигнала завершения.
// Ошибки конфигурации возвращаются до начала потребления.
func run(ctx context.Context, modelConfigPath string) error {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting domain-detection-worker", "version", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	model, err := config.ReadModelConfig(modelConfigPath)
	if err != nil {
		return err
	}
	logger.Info("model config loaded",
		"path", modelConfigPath,
		"languages", model.Languages,
		"labels", model.LabelSet().Len(),
		"model_source", model.ModelSource,
	)

	if !model.LabelSet().Contains(model.DefaultLabel) {
		logger.Warn("default label is not one of the model labels",
			"default_label", model.DefaultLabel)
	}

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Классификатор
	client := classifier.NewClient(model.ModelSource, nil)

	checkCtx, checkCancel := context.WithTimeout(ctx, labelsCheckTimeout)
	err = worker.ValidateLabels(checkCtx, client, model.LabelSet())
	checkCancel()
	switch {
	case errors.Is(err, worker.ErrLabelsMismatch):
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	case err != nil:
		logger.Warn("model service unavailable, skipping label check", "error", err)
	}

	segmenter, err := detector.NewPunktSegmenter(model.Languages)
	if err != nil {
		return err
	}
	if fallbacks := segmenter.Fallbacks(); len(fallbacks) > 0 {
		logger.Warn("no sentence model for languages, using english", "languages", fallbacks)
	}

	det := detector.New(detector.Config{
		Classifier:     client,
		Segmenter:      segmenter,
		Labels:         model.LabelSet(),
		MaxInputLength: cfg.Worker.MaxInputLength,
	})

	state := health.NewState()
	topology := mq.BuildTopology(cfg.MQ.Exchange, model.Languages)

	// Создаём worker
	w := worker.New(worker.Config{
		Detector:       det,
		DefaultLabel:   model.DefaultLabel,
		Dialer:         mq.NewDialer(cfg.MQ.Connection()),
		Topology:       topology,
		ConnectionName: cfg.MQ.ConnectionName,
		ReconnectDelay: cfg.Worker.ReconnectDelay,
		Health:         state,
		Logger:         logger,
	})

	// HTTP mux: пробы + /metrics
	mux := http.NewServeMux()
	health.Register(mux, w.Health())
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Worker.HTTPPort),
		Handler:           health.Guard(mux, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Запускаем worker
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}

	// Ожидаем сигнал завершения
	<-ctx.Done()

	// Останавливаем worker
	w.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}

	logger.Info("domain-detection-worker stopped")
	return nil
}
