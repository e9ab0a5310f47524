package qlearn

import (
	"testing"
	"tiles/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestReward(t *testing.T) {
	b := mustBoard(t, [][]int{
		{4, 2},
		{0, 8},
	})

	require.Equal(t, NoOpReward, Reward(game.MoveResult{}, b), "No-op should be penalised")
	require.Equal(t, 14.0, Reward(game.MoveResult{Changed: true}, b), "Reward should be the tile sum")
}

func TestRunEpisode(t *testing.T) {
	t.Run("playing until the step cap", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		trainer := NewTrainer(NewTable(4), WithRand(rng), WithEpsilonDecay(0.5))
		session, err := game.NewGame(4, game.NewRandomSpawner(rng))
		require.NoError(t, err)

		episode := trainer.RunEpisode(session, 5)

		require.Equal(t, 5, episode.Steps)
		require.False(t, episode.GameOver, "Five moves cannot fill a board")
		require.Equal(t, 1.0, episode.Epsilon, "Episode should report the epsilon it played with")
		require.Equal(t, 0.5, trainer.Epsilon(), "Epsilon should decay once per episode")
		require.Positive(t, trainer.Table().Len())
	})

	t.Run("stopping at game over", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		trainer := NewTrainer(NewTable(2), WithRand(rng))
		session, err := game.NewGame(2, game.NewRandomSpawner(rng))
		require.NoError(t, err)

		episode := trainer.RunEpisode(session, 0)

		require.True(t, episode.GameOver, "Uncapped 2x2 game should run to game over")
		require.True(t, session.IsGameOver())
	})
}

func TestTrain(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	trainer := NewTrainer(NewTable(3), WithRand(rng))
	newGame := func() (*game.Session, error) {
		return game.NewGame(3, game.NewRandomSpawner(rng))
	}

	episodes, err := trainer.Train(newGame, TrainOptions{Episodes: 10, MaxSteps: 200, LogEvery: 5})

	require.NoError(t, err)
	require.Len(t, episodes, 10)
	require.Equal(t, 10, episodes[9].Number)
	require.Less(t, trainer.Epsilon(), 1.0, "Epsilon should decay over training")

	_, err = trainer.Train(func() (*game.Session, error) {
		return game.NewGame(0, nil)
	}, TrainOptions{Episodes: 1})
	require.ErrorIs(t, err, game.ErrInvalidSize, "Game creation errors should propagate")
}
