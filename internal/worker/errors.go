package worker

import "errors"

// Ошибки воркера.
var (
	// ErrLabelsMismatch — модель знает больше классов, чем описано меток.
	ErrLabelsMismatch = errors.New("model labels do not match configuration")
)
