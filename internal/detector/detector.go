package detector

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputLength — максимальная длина входного текста в символах.
const DefaultMaxInputLength = 10000

// Classifier — внешняя модель: предсказывает индекс класса для каждого
// предложения. Порядок результата совпадает с порядком предложений.
type Classifier interface {
	Predict(ctx context.Context, src string, sentences []string) ([]int, error)
}

// Detector — политика агрегации: сегментация, классификация, голосование.
type Detector struct {
	classifier     Classifier
	segmenter      Segmenter
	labels         Labels
	maxInputLength int
}

// Config — конфигурация Detector.
type Config struct {
	Classifier Classifier
	Segmenter  Segmenter
	Labels     Labels

	// MaxInputLength — предел длины текста в символах (default: 10000).
	MaxInputLength int
}

// New создаёт новый Detector.
func New(cfg Config) *Detector {
	maxInputLength := cfg.MaxInputLength
	if maxInputLength <= 0 {
		maxInputLength = DefaultMaxInputLength
	}

	return &Detector{
		classifier:     cfg.Classifier,
		segmenter:      cfg.Segmenter,
		labels:         cfg.Labels,
		maxInputLength: maxInputLength,
	}
}

// Process разбирает payload и определяет домен.
func (d *Detector) Process(ctx context.Context, body []byte) Result {
	req, err := DecodeRequest(body)
	if err != nil {
		return Result{Err: err}
	}
	return d.Detect(ctx, req)
}

// Detect определяет домен для разобранного запроса.
func (d *Detector) Detect(ctx context.Context, req Request) (result Result) {
	defer func() {
		if p := recover(); p != nil {
			result = Result{Err: fmt.Errorf("%w: panic: %v", ErrClassification, p)}
		}
	}()

	sentences := d.Sentences(req.Src, req.Text)

	predictions, err := d.classifier.Predict(ctx, req.Src, sentences)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ErrClassification, err)}
	}
	if len(predictions) != len(sentences) {
		return Result{Err: fmt.Errorf("%w: got %d predictions for %d sentences",
			ErrClassification, len(predictions), len(sentences))}
	}

	for _, p := range predictions {
		if p < 0 || p >= d.labels.Len() {
			return Result{Err: fmt.Errorf("%w: classifier returned %d, %d labels configured",
				ErrUnknownLabel, p, d.labels.Len())}
		}
	}

	winner, err := MajorityVote(predictions)
	if err != nil {
		return Result{Err: err}
	}

	label, err := d.labels.Name(winner)
	if err != nil {
		return Result{Err: err}
	}

	return Result{Label: label}
}

// Sentences превращает текст запроса в упорядоченный список предложений.
//
// Каждый элемент списка сегментируется отдельно, результаты склеиваются.
// Если суммарная длина превышает предел, тексты объединяются через пробел,
// обрезаются до предела и от сегментации остаётся только последнее предложение.
// Результат никогда не пуст: при отсутствии предложений возвращается [""].
func (d *Detector) Sentences(src string, text Text) []string {
	if totalLength(text) > d.maxInputLength {
		truncated := truncate(strings.Join(text, " "), d.maxInputLength)
		segments := d.segment(src, truncated)
		return segments[len(segments)-1:]
	}

	var out []string
	for _, t := range text {
		out = append(out, d.segment(src, t)...)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// segment делит один текст; пустой результат заменяется на [""].
func (d *Detector) segment(src, text string) []string {
	var out []string
	if strings.TrimSpace(text) != "" {
		for _, s := range d.segmenter.Split(src, text) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

func totalLength(text Text) int {
	n := 0
	for _, t := range text {
		n += utf8.RuneCountInString(t)
	}
	return n
}

// truncate обрезает строку до limit символов (не байт).
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
