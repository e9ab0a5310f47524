package agent

import (
	"math"
	"tiles/game"

	"golang.org/x/exp/rand"
)

type greedyAgent struct {
	evaluate game.Evaluate
}

// NewGreedyAgent returns a one-ply agent that picks the legal move whose
// resulting board scores best. It defaults to game.EvaluateSimple.
func NewGreedyAgent(evaluate game.Evaluate) Agent {
	if evaluate == nil {
		evaluate = game.EvaluateSimple
	}
	return greedyAgent{evaluate: evaluate}
}

func (a greedyAgent) FindMove(b *game.Board) (game.Direction, bool) {
	best := game.Direction(-1)
	bestScore := math.Inf(-1)
	for _, d := range game.Directions {
		next, result := game.Simulate(b, d)
		if !result.Changed {
			continue
		}
		if score := a.evaluate(next); best < 0 || score > bestScore {
			best = d
			bestScore = score
		}
	}
	return best, best >= 0
}

func (a greedyAgent) Name() string {
	return "greedy"
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among legal moves.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(b *game.Board) (game.Direction, bool) {
	moves := game.LegalMoves(b)
	if len(moves) == 0 {
		return 0, false
	}
	return moves[a.rng.Intn(len(moves))], true
}

func (a randomAgent) Name() string {
	return "random"
}
