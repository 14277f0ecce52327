package worker

import (
	"context"
	"fmt"

	"github.com/shaiso/domain-detection-worker/internal/detector"
)

// LabelCounter — классификатор, умеющий сообщить число своих классов.
type LabelCounter interface {
	NumLabels(ctx context.Context) (int, error)
}

// ValidateLabels проверяет, что каждый класс модели имеет метку.
// Ошибка связи с моделью возвращается как есть: решать, фатальна ли она, вызывающему.
func ValidateLabels(ctx context.Context, counter LabelCounter, labels detector.Labels) error {
	n, err := counter.NumLabels(ctx)
	if err != nil {
		return fmt.Errorf("query model labels: %w", err)
	}

	if err := labels.CoversClasses(n); err != nil {
		return fmt.Errorf("%w: %w", ErrLabelsMismatch, err)
	}

	return nil
}
