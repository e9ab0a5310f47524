package engine

import (
	"tiles/experiments/metrics"
	"tiles/meta"
)

// MaxMoves caps a game when no explicit limit is given.
const MaxMoves = meta.MAX_MOVES

type Engine interface {
	// Run plays a game till game over or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
