// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// Rng — всё, что эффектам нужно от случайности. Один источник на
// приложение, чтобы тесты могли воспроизводить последовательности.
type Rng interface {
	Intn(n int) int
	Float64() float64
}

// PRNGService — это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом во всём приложении.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// RangeF возвращает равномерное число в [lo, hi).
func RangeF(r Rng, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Chance возвращает true с вероятностью p.
func Chance(r Rng, p float64) bool {
	return r.Float64() < p
}

// Sign возвращает -1 или 1 с равной вероятностью.
func Sign(r Rng) float64 {
	if r.Intn(2) == 0 {
		return -1
	}
	return 1
}

// ChooseWeighted выполняет взвешенный случайный выбор индекса.
// Он суммирует все веса, выбирает случайное число в этом диапазоне,
// а затем находит элемент, которому соответствует это число.
// Возвращает -1 для пустого списка.
func ChooseWeighted(r Rng, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		// Если сумма весов некорректна, возвращаем первый элемент по умолчанию
		return 0
	}

	x := r.Float64() * total
	upto := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if upto+w > x {
			return i
		}
		upto += w
	}
	return len(weights) - 1
}
