// Package classifier — HTTP-клиент сервиса инференса модели.
//
// Сама нейросеть (токенизация, веса, размещение на GPU/CPU) живёт во внешнем
// сервисе; воркер видит её только как Classifier из пакета detector.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shaiso/domain-detection-worker/internal/detector"
	"github.com/shaiso/domain-detection-worker/internal/telemetry"
)

// ErrModelService — сервис модели вернул ошибку или некорректный ответ.
var ErrModelService = errors.New("model service error")

// PredictRequest — запрос к сервису модели.
type PredictRequest struct {
	Sentences []string `json:"sentences"`
	Src       string   `json:"src,omitempty"`
}

// PredictResponse — логиты модели, по строке на предложение.
type PredictResponse struct {
	Logits [][]float64 `json:"logits"`
}

// InfoResponse — описание загруженной модели.
type InfoResponse struct {
	NumLabels int    `json:"num_labels"`
	Model     string `json:"model,omitempty"`
}

// Client — HTTP-клиент сервиса модели.
//
// Таймаут запроса не задаётся: зависший вызов блокирует конвейер,
// отменить его можно только через ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ detector.Classifier = (*Client)(nil)

// NewClient создаёт клиент для сервиса по адресу baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Predict возвращает индекс класса для каждого предложения (argmax логитов).
func (c *Client) Predict(ctx context.Context, src string, sentences []string) ([]int, error) {
	body, err := json.Marshal(PredictRequest{Sentences: sentences, Src: src})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result PredictResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	if len(result.Logits) != len(sentences) {
		return nil, fmt.Errorf("%w: got %d rows of logits for %d sentences",
			ErrModelService, len(result.Logits), len(sentences))
	}

	telemetry.FromContext(ctx).Debug("model prediction",
		"src", src,
		"sentences", len(sentences),
		"duration", time.Since(start),
	)

	predictions := make([]int, len(result.Logits))
	for i, row := range result.Logits {
		idx, err := detector.Argmax(row)
		if err != nil {
			return nil, fmt.Errorf("%w: sentence %d: %v", ErrModelService, i, err)
		}
		predictions[i] = idx
	}

	return predictions, nil
}

// NumLabels возвращает количество классов загруженной модели.
func (c *Client) NumLabels(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/info", http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	var info InfoResponse
	if err := c.do(req, &info); err != nil {
		return 0, err
	}
	if info.NumLabels <= 0 {
		return 0, fmt.Errorf("%w: model reports %d labels", ErrModelService, info.NumLabels)
	}

	return info.NumLabels, nil
}

// do выполняет запрос и декодирует JSON-ответ в out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrModelService, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrModelService, err)
	}

	return nil
}
