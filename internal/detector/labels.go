package detector

import (
	"fmt"
	"sort"
)

// Labels — неизменяемое отображение индекса класса в имя домена.
//
// Индексы обязаны быть непрерывными 0..n-1: пропуск — ошибка конфигурации,
// которая обнаруживается при старте, а не при обработке запроса.
type Labels struct {
	names []string
}

// NewLabels валидирует отображение и строит Labels.
func NewLabels(m map[int]string) (Labels, error) {
	if len(m) == 0 {
		return Labels{}, fmt.Errorf("%w: no labels configured", ErrInvalidLabels)
	}

	indexes := make([]int, 0, len(m))
	for i := range m {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	names := make([]string, len(indexes))
	for pos, i := range indexes {
		if i != pos {
			return Labels{}, fmt.Errorf("%w: missing label for index %d", ErrInvalidLabels, pos)
		}
		if m[i] == "" {
			return Labels{}, fmt.Errorf("%w: empty label for index %d", ErrInvalidLabels, i)
		}
		names[pos] = m[i]
	}

	return Labels{names: names}, nil
}

// Name возвращает метку для индекса.
func (l Labels) Name(index int) (string, error) {
	if index < 0 || index >= len(l.names) {
		return "", fmt.Errorf("%w: %d", ErrUnknownLabel, index)
	}
	return l.names[index], nil
}

// Len — количество меток.
func (l Labels) Len() int {
	return len(l.names)
}

// Contains проверяет, есть ли такая метка среди имён.
func (l Labels) Contains(name string) bool {
	for _, n := range l.names {
		if n == name {
			return true
		}
	}
	return false
}

// CoversClasses проверяет, что каждый из n классов модели имеет метку.
func (l Labels) CoversClasses(n int) error {
	if n > len(l.names) {
		return fmt.Errorf("%w: model has %d classes, only %d labels configured", ErrInvalidLabels, n, len(l.names))
	}
	return nil
}
