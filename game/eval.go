package game

import "math"

// Evaluate scores a board position; higher is better for the player to move.
type Evaluate func(*Board) float64

// Weights of the heuristic components. They are tuning constants, not part
// of the algorithm.
type Weights struct {
	Empty        float64 `yaml:"empty"`
	MaxTile      float64 `yaml:"max_tile"`
	Monotonicity float64 `yaml:"monotonicity"`
	Smoothness   float64 `yaml:"smoothness"`
}

var DefaultWeights = Weights{
	Empty:        270,
	MaxTile:      1000,
	Monotonicity: 47,
	Smoothness:   15,
}

// NewHeuristic combines empty cells, log2 of the max tile, monotonicity and
// smoothness into one score.
func NewHeuristic(w Weights) Evaluate {
	return func(b *Board) float64 {
		score := w.Empty*float64(b.EmptyCount()) +
			w.Monotonicity*Monotonicity(b) +
			w.Smoothness*Smoothness(b)
		if maxTile := b.MaxTile(); maxTile >= 1 {
			score += w.MaxTile * math.Log2(float64(maxTile))
		}
		return score
	}
}

// EvaluateHeuristic is NewHeuristic(DefaultWeights).
var EvaluateHeuristic = NewHeuristic(DefaultWeights)

// EvaluateSimple is the cheap score used by the one-ply greedy agent.
func EvaluateSimple(b *Board) float64 {
	return float64(b.EmptyCount()) + 0.1*float64(b.MaxTile())
}

// Monotonicity is <= 0 and reaches 0 when every row is ordered in one common
// direction and every column in one common direction. Decreases and increases
// are tallied over all rows, the smaller tally is the penalty; columns the same.
func Monotonicity(b *Board) float64 {
	var rowDec, rowInc, colDec, colInc float64
	for i := 0; i < b.size; i++ {
		for j := 0; j < b.size-1; j++ {
			rowDec, rowInc = tally(rowDec, rowInc, b.Get(i, j), b.Get(i, j+1))
			colDec, colInc = tally(colDec, colInc, b.Get(j, i), b.Get(j+1, i))
		}
	}
	return -math.Min(rowDec, rowInc) - math.Min(colDec, colInc)
}

func tally(dec, inc float64, current, next int) (float64, float64) {
	if current > next {
		return dec + float64(current-next), inc
	}
	return dec, inc + float64(next-current)
}

// Smoothness is <= 0: every nonzero tile loses the log2 distance to its right
// and lower nonzero neighbours.
func Smoothness(b *Board) float64 {
	smooth := 0.0
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			v := b.Get(r, c)
			if v == 0 {
				continue
			}
			value := math.Log2(float64(v))
			if c+1 < b.size {
				if n := b.Get(r, c+1); n != 0 {
					smooth -= math.Abs(value - math.Log2(float64(n)))
				}
			}
			if r+1 < b.size {
				if n := b.Get(r+1, c); n != 0 {
					smooth -= math.Abs(value - math.Log2(float64(n)))
				}
			}
		}
	}
	return smooth
}
