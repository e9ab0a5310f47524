package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"tiles/config"
	"tiles/game"
	"tiles/qlearn"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func seededGames(size int) GameFactory {
	return func(i int) (*game.Session, error) {
		return game.NewGame(size, game.NewRandomSpawner(rand.New(rand.NewSource(uint64(i)+1))))
	}
}

func smallConfig(agentName string) config.Config {
	cfg := config.Default()
	cfg.BoardSize = 3
	cfg.Search.Depth = 1
	cfg.Evaluation.Games = 2
	cfg.Evaluation.Agent = agentName
	return cfg
}

func TestNewAgentFactory(t *testing.T) {
	t.Run("building each named agent", func(t *testing.T) {
		for _, name := range []string{"expectimax", "greedy", "random"} {
			newAgent, err := NewAgentFactory(smallConfig(name), rand.New(rand.NewSource(1)))
			require.NoError(t, err, "Agent %s should be built", name)

			a, err := newAgent()
			require.NoError(t, err)
			require.Equal(t, name, a.Name())
		}
	})

	t.Run("loading a trained table", func(t *testing.T) {
		cfg := smallConfig("qtable")
		cfg.Training.TablePath = filepath.Join(t.TempDir(), "table.json")
		require.NoError(t, qlearn.NewTable(3).SaveFile(cfg.Training.TablePath))

		newAgent, err := NewAgentFactory(cfg, nil)
		require.NoError(t, err)
		a, err := newAgent()
		require.NoError(t, err)
		require.Equal(t, "qtable", a.Name())
	})

	t.Run("rejecting a table for another board size", func(t *testing.T) {
		cfg := smallConfig("qtable")
		cfg.Training.TablePath = filepath.Join(t.TempDir(), "table.json")
		require.NoError(t, qlearn.NewTable(4).SaveFile(cfg.Training.TablePath))

		_, err := NewAgentFactory(cfg, nil)
		require.ErrorIs(t, err, qlearn.ErrTableFormat)
	})

	t.Run("failing on a missing table", func(t *testing.T) {
		cfg := smallConfig("qtable")
		cfg.Training.TablePath = filepath.Join(t.TempDir(), "missing.json")

		_, err := NewAgentFactory(cfg, nil)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("rejecting an unknown agent", func(t *testing.T) {
		_, err := NewAgentFactory(smallConfig("oracle"), nil)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestRunEvaluation(t *testing.T) {
	cfg := smallConfig("greedy")
	newAgent, err := NewAgentFactory(cfg, nil)
	require.NoError(t, err)

	games, moves, err := RunEvaluation(cfg.Evaluation, seededGames(cfg.BoardSize), newAgent)

	require.NoError(t, err)
	require.Len(t, games, 2, "One record per game")
	total := 0
	for i, g := range games {
		require.Equal(t, i+1, g.ID)
		require.True(t, g.GameOver, "Small games should run to the end")
		total += g.Moves
	}
	require.Len(t, moves, total, "One move record per move")

	t.Run("writing the results", func(t *testing.T) {
		dir, err := WriteResults(t.TempDir(), "evaluation", nil, games, moves)

		require.NoError(t, err)
		require.FileExists(t, filepath.Join(dir, "game_records.csv"))
		require.FileExists(t, filepath.Join(dir, "move_records.csv"))
		require.FileExists(t, filepath.Join(dir, "evaluation.log"))
		require.NoFileExists(t, filepath.Join(dir, "agent_configs.csv"), "No agent configs were given")
	})

	t.Run("propagating game creation errors", func(t *testing.T) {
		_, _, err := RunEvaluation(cfg.Evaluation, func(int) (*game.Session, error) {
			return game.NewGame(1, game.NewSequenceSpawner())
		}, newAgent)
		require.ErrorIs(t, err, game.ErrInvalidSize)
	})
}

func TestRunThroughputExperiment(t *testing.T) {
	cfg := smallConfig("expectimax")
	cfg.Evaluation.Games = 1

	configs, games, moves, err := RunThroughputExperiment(cfg, seededGames(cfg.BoardSize), []int{1, 2})

	require.NoError(t, err)
	require.Len(t, configs, 2)
	require.Len(t, games, 2, "One game per goroutine setting")
	require.Equal(t, games[0].Score, games[1].Score, "Parallel search should play the same game")
	require.Equal(t, games[0].Moves, games[1].Moves, "Parallel search should play the same game")
	require.Equal(t, 2, games[1].Agent)
	for _, m := range moves {
		require.Equal(t, 1, m.Depth)
	}
}
