package qlearn

import (
	"fmt"
	"tiles/game"

	"github.com/rs/zerolog/log"
)

// NoOpReward is the reward for a move that leaves the board unchanged.
const NoOpReward = -1.0

// Reward is -1 for a no-op, otherwise the sum of all tiles on the resulting
// board. It ignores board shape entirely.
func Reward(result game.MoveResult, next *game.Board) float64 {
	if !result.Changed {
		return NoOpReward
	}
	return float64(next.Sum())
}

// Episode summarises one training game.
type Episode struct {
	Number   int
	Score    int
	MaxTile  int
	Steps    int
	Epsilon  float64
	GameOver bool // False if the step cap ended the episode
}

// RunEpisode plays a session to game over (or maxSteps moves, no-ops
// included), updating the table after every move. Epsilon decays once at the
// end of the episode.
func (t *Trainer) RunEpisode(session *game.Session, maxSteps int) Episode {
	steps := 0
	for !session.IsGameOver() && (maxSteps <= 0 || steps < maxSteps) {
		state := session.Board()
		action := t.ChooseAction(state)
		result := session.Move(action)
		next := session.Board()

		done := !game.CanMove(next)
		t.UpdateQ(state, action, Reward(result, next), next, done)
		steps++
	}

	episode := Episode{
		Score:    session.Score(),
		MaxTile:  session.Board().MaxTile(),
		Steps:    steps,
		Epsilon:  t.epsilon,
		GameOver: session.IsGameOver(),
	}
	t.DecayEpsilon()
	return episode
}

// TrainOptions controls a training run.
type TrainOptions struct {
	Episodes int
	MaxSteps int // Per episode; 0 means no cap
	LogEvery int // Episodes between progress logs; 0 disables them
}

// Train plays opts.Episodes games created by newGame and returns their
// summaries.
func (t *Trainer) Train(newGame func() (*game.Session, error), opts TrainOptions) ([]Episode, error) {
	episodes := make([]Episode, 0, opts.Episodes)
	best := 0
	for i := 1; i <= opts.Episodes; i++ {
		session, err := newGame()
		if err != nil {
			return episodes, fmt.Errorf("failed to start episode %d: %w", i, err)
		}

		episode := t.RunEpisode(session, opts.MaxSteps)
		episode.Number = i
		episodes = append(episodes, episode)
		if episode.Score > best {
			best = episode.Score
		}

		if opts.LogEvery > 0 && i%opts.LogEvery == 0 {
			log.Info().
				Int("episode", i).
				Int("score", episode.Score).
				Int("max_tile", episode.MaxTile).
				Int("best_score", best).
				Float64("epsilon", t.epsilon).
				Int("states", t.table.Len()).
				Msg("training progress")
		}
	}
	return episodes, nil
}
