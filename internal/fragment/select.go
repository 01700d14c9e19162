// Package fragment решает, что именно разваливается от выстрела:
// какие слова, какие плитки изображения, и с какой начальной скоростью.
package fragment

import (
	"sort"

	"go-shatter/internal/config"
	"go-shatter/internal/types"
	"go-shatter/internal/utils"
)

// SelectWords выбирает слова, которые разрушит выстрел.
// alive — индексы неразрушенных слов блока по возрастанию, struck среди них.
// Результат отсортирован по возрастанию.
func SelectWords(r utils.Rng, weapon types.WeaponKind, struck int, alive []int, spread config.SpreadTuning) []int {
	pos := sort.SearchInts(alive, struck)
	if pos == len(alive) || alive[pos] != struck {
		return nil
	}

	switch weapon {
	case types.WeaponExplosive:
		out := make([]int, len(alive))
		copy(out, alive)
		return out
	case types.WeaponSpread:
		return spreadFrom(r, pos, alive, spread)
	default:
		return []int{struck}
	}
}

// spreadFrom наращивает выбор соседями: каждый раз ближайшее живое слово
// слева или справа от текущего отрезка, сторона выбирается случайно.
func spreadFrom(r utils.Rng, pos int, alive []int, spread config.SpreadTuning) []int {
	extra := 2
	if utils.Chance(r, spread.OneNeighborP) {
		extra = 1
	}
	if limit := spread.MaxWords - 1; extra > limit {
		extra = limit
	}

	lo, hi := pos, pos
	for ; extra > 0; extra-- {
		var sides []int
		if lo > 0 {
			sides = append(sides, lo-1)
		}
		if hi < len(alive)-1 {
			sides = append(sides, hi+1)
		}
		if len(sides) == 0 {
			break
		}
		next := sides[r.Intn(len(sides))]
		if next < lo {
			lo = next
		} else {
			hi = next
		}
	}

	out := make([]int, hi-lo+1)
	copy(out, alive[lo:hi+1])
	return out
}

// KnockCount — сколько плиток выбивает один выстрел.
func KnockCount(r utils.Rng, weapon types.WeaponKind, remaining int) int {
	var n int
	switch weapon {
	case types.WeaponExplosive:
		n = remaining
	case types.WeaponSpread:
		n = 3 + r.Intn(3)
	default:
		// одна плитка в 70% случаев, иначе две
		n = 1 + utils.ChooseWeighted(r, []float64{0.7, 0.3})
	}
	return min(n, remaining)
}
