package searcher

import (
	"math"
	"tiles/game"
)

// maximize is the player's layer: the best expected value over every
// direction that changes the board.
func (e *Expectimax) maximize(b *game.Board, depth int) float64 {
	e.metrics.AddNode()

	if depth <= 0 || !game.CanMove(b) { // Terminal node
		return e.leaf(b)
	}

	best := math.Inf(-1)
	moved := false
	for _, d := range game.Directions {
		next, result := game.Simulate(b, d)
		if !result.Changed { // No-op moves are never expanded
			continue
		}
		moved = true
		if v := e.expect(next, depth-1); v > best {
			best = v
		}
	}

	if !moved {
		return e.leaf(b)
	}
	return best
}
