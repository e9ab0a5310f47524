package agent

import (
	"tiles/experiments/metrics"
	"tiles/game"
	"tiles/searcher"
)

type Agent interface {
	// FindMove suggests a direction for the board, or false if it has none
	FindMove(b *game.Board) (game.Direction, bool)
	Name() string
}

type expectimaxAgent struct {
	searcher *searcher.Expectimax
	depth    int
}

// NewExpectimaxAgent returns an agent that searches depth plies ahead.
func NewExpectimaxAgent(s *searcher.Expectimax, depth int) Agent {
	return expectimaxAgent{searcher: s, depth: depth}
}

func (a expectimaxAgent) FindMove(b *game.Board) (game.Direction, bool) {
	return a.searcher.BestMove(b, a.depth)
}

func (a expectimaxAgent) Name() string {
	return "expectimax"
}

// Searcher is implemented by agents that can report search metrics.
type Searcher interface {
	Search(b *game.Board) (game.Direction, bool, metrics.SearchMetric)
}

func (a expectimaxAgent) Search(b *game.Board) (game.Direction, bool, metrics.SearchMetric) {
	return a.searcher.Search(b, a.depth)
}
