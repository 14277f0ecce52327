package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shaiso/domain-detection-worker/internal/detector"
	"github.com/shaiso/domain-detection-worker/internal/mq"
	"github.com/shaiso/domain-detection-worker/internal/telemetry"
)

// HandleDelivery обрабатывает один запрос: decode → detect → reply → ack.
//
// Ошибки не выходят за пределы обработчика: неудачный запрос получает ответ
// с меткой по умолчанию. Сообщение подтверждается всегда, даже если ответ
// не удалось опубликовать.
func (w *Worker) HandleDelivery(ctx context.Context, d *mq.Delivery) {
	start := time.Now()
	logger := telemetry.WithRequestID(telemetry.WithCorrelationID(w.logger, d.CorrelationID), d.RequestID())

	logger.Info("received request", "size", len(d.Body))
	ctx = telemetry.WithLogger(ctx, logger)

	result := w.detector.Process(ctx, d.Body)
	outcome := outcomeOf(result)
	if !result.OK() {
		logger.Error("request failed, responding with default label",
			"default_label", w.defaultLabel,
			"outcome", outcome,
			"error", result.Err,
		)
	}

	body, err := result.Response(w.defaultLabel).Encode()
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		body = []byte(`{}`)
	}

	if err := d.Reply(ctx, body); err != nil {
		telemetry.PublishFailures.Inc()
		logger.Warn("failed to publish response", "reply_to", d.ReplyTo, "error", err)
	}

	if err := d.Ack(); err != nil {
		logger.Error("failed to acknowledge request", "error", err)
	}

	duration := time.Since(start)
	telemetry.RequestsTotal.WithLabelValues(outcome).Inc()
	telemetry.RequestDuration.Observe(duration.Seconds())
	telemetry.RequestSize.Observe(float64(len(d.Body)))
	telemetry.ResponseSize.Observe(float64(len(body)))

	logger.Info("request processed",
		"outcome", outcome,
		"request_size", len(d.Body),
		"response_size", len(body),
		"duration", duration,
	)
}

// outcomeOf классифицирует результат для метрик и логов.
func outcomeOf(r detector.Result) string {
	switch {
	case r.OK():
		return telemetry.OutcomeOK
	case errors.Is(r.Err, detector.ErrDecode):
		return telemetry.OutcomeDecodeError
	default:
		return telemetry.OutcomeClassificationError
	}
}
