package detector

import "errors"

// Ошибки определения домена.
var (
	// ErrDecode — payload не является корректным запросом.
	ErrDecode = errors.New("decode request")

	// ErrClassification — классификатор вернул ошибку или некорректный ответ.
	ErrClassification = errors.New("classification failed")

	// ErrUnknownLabel — для индекса нет метки.
	ErrUnknownLabel = errors.New("unknown label index")

	// ErrEmptyPrediction — нет ни одного голоса для агрегации.
	ErrEmptyPrediction = errors.New("empty prediction")

	// ErrInvalidLabels — таблица меток не прошла валидацию.
	ErrInvalidLabels = errors.New("invalid label mapping")
)
