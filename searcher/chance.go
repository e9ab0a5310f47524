package searcher

import "tiles/game"

type outcome struct {
	value int
	prob  float64
}

var outcomes = []outcome{
	{value: 2, prob: game.SpawnTwoProb},
	{value: 4, prob: game.SpawnFourProb},
}

// expect is the environment's layer: the average over every empty cell and
// spawn value, cells uniform and values weighted by spawn probability.
func (e *Expectimax) expect(b *game.Board, depth int) float64 {
	e.metrics.AddNode()

	if depth <= 0 { // Terminal node
		return e.leaf(b)
	}
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return e.leaf(b)
	}

	size := b.Size()
	cellWeight := 1 / float64(len(empty))
	child := b.Clone()
	total := 0.0
	for _, cell := range empty {
		row, col := cell/size, cell%size
		for _, o := range outcomes {
			child.Set(row, col, o.value)
			total += o.prob * cellWeight * e.maximize(child, depth-1)
		}
		child.Set(row, col, 0)
	}
	return total
}
