package searcher

import (
	"math"
	"tiles/experiments/metrics"
	"tiles/game"

	"golang.org/x/sync/errgroup"
)

// DefaultDepth keeps a move search interactive.
const DefaultDepth = 3

type Option func(e *Expectimax)

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

// WithGoroutines evaluates the top-level directions concurrently, each on its
// own copy of the board.
func WithGoroutines(goroutines int) Option {
	return func(e *Expectimax) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(e *Expectimax) {
		e.metrics = metrics.NewCollector()
	}
}

// Expectimax searches alternating maximizing (player) and chance (tile
// spawn) layers down to a fixed depth and scores the frontier with an
// evaluation function.
type Expectimax struct {
	goroutines int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

func NewExpectimax(options ...Option) *Expectimax {
	e := &Expectimax{ // Default values
		goroutines: 1,
		evaluate:   game.EvaluateHeuristic,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// BestMove returns the direction with the highest expected value, or false if
// no direction changes the board. Ties go to the earliest direction in
// Up, Down, Left, Right order.
func (e *Expectimax) BestMove(b *game.Board, maxDepth int) (game.Direction, bool) {
	d, ok, _ := e.Search(b, maxDepth)
	return d, ok
}

// Search is BestMove plus the metrics of the search. A maxDepth below 1 is
// treated as 1.
func (e *Expectimax) Search(b *game.Board, maxDepth int) (game.Direction, bool, metrics.SearchMetric) {
	if maxDepth < 1 {
		maxDepth = 1
	}
	e.metrics.Start(e.goroutines, maxDepth)

	var scores [game.NumDirections]float64
	var legal [game.NumDirections]bool
	branch := func(i int, d game.Direction) {
		next, result := game.Simulate(b, d)
		if !result.Changed {
			return
		}
		legal[i] = true
		scores[i] = e.expect(next, maxDepth-1)
	}

	if e.goroutines > 1 {
		var g errgroup.Group
		g.SetLimit(e.goroutines)
		for i, d := range game.Directions {
			i, d := i, d
			g.Go(func() error {
				branch(i, d)
				return nil
			})
		}
		_ = g.Wait() // Branches never fail
	} else {
		for i, d := range game.Directions {
			branch(i, d)
		}
	}

	// Reduce in enumeration order so ties break the same way in both modes
	best := -1
	bestScore := math.Inf(-1)
	for i := range game.Directions {
		if !legal[i] {
			continue
		}
		if best < 0 || scores[i] > bestScore {
			best = i
			bestScore = scores[i]
		}
	}

	metric := e.metrics.Complete()
	if best < 0 {
		return 0, false, metric
	}
	return game.Directions[best], true, metric
}

func (e *Expectimax) leaf(b *game.Board) float64 {
	e.metrics.AddLeaf()
	return e.evaluate(b)
}
