package detector

import "fmt"

// MajorityVote агрегирует предсказания по предложениям в один индекс класса.
//
// Считает голоса по каждому индексу и возвращает индекс с максимумом.
// При равенстве побеждает меньший индекс: счётчики просматриваются по
// возрастанию индекса и сохраняется первый максимум.
func MajorityVote(predictions []int) (int, error) {
	if len(predictions) == 0 {
		return 0, ErrEmptyPrediction
	}

	highest := 0
	for _, p := range predictions {
		if p < 0 {
			return 0, fmt.Errorf("%w: %d", ErrUnknownLabel, p)
		}
		highest = max(highest, p)
	}

	counts := make([]int, highest+1)
	for _, p := range predictions {
		counts[p]++
	}

	winner := 0
	for i, c := range counts {
		if c > counts[winner] {
			winner = i
		}
	}

	return winner, nil
}

// Argmax возвращает индекс максимального значения (первый при равенстве).
func Argmax(scores []float64) (int, error) {
	if len(scores) == 0 {
		return 0, ErrEmptyPrediction
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best, nil
}
