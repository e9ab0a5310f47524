package experiments

import (
	"fmt"
	"tiles/config"
	"tiles/engine"
	"tiles/experiments/metrics"
	"tiles/game"
	"tiles/qlearn"
	"tiles/searcher"
	"tiles/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// GameFactory starts game number i (from 0). Returning the same game for the
// same i lets different agents play identical tile sequences.
type GameFactory func(i int) (*game.Session, error)

type AgentFactory func() (agent.Agent, error)

// NewAgentFactory builds agents named by cfg.Evaluation.Agent. The qtable
// agent loads cfg.Training.TablePath once and shares it between games.
func NewAgentFactory(cfg config.Config, rng *rand.Rand) (AgentFactory, error) {
	switch cfg.Evaluation.Agent {
	case "expectimax":
		return func() (agent.Agent, error) {
			return agent.NewExpectimaxAgent(createExpectimax(cfg.Search, cfg.Search.Goroutines), cfg.Search.Depth), nil
		}, nil
	case "qtable":
		table, err := qlearn.LoadFile(cfg.Training.TablePath)
		if err != nil {
			return nil, err
		}
		if table.Size() != cfg.BoardSize {
			return nil, fmt.Errorf("table is for %dx%d boards, not %dx%d: %w",
				table.Size(), table.Size(), cfg.BoardSize, cfg.BoardSize, qlearn.ErrTableFormat)
		}
		return func() (agent.Agent, error) {
			return agent.NewTableAgent(table), nil
		}, nil
	case "greedy":
		return func() (agent.Agent, error) {
			return agent.NewGreedyAgent(nil), nil
		}, nil
	case "random":
		return func() (agent.Agent, error) {
			return agent.NewRandomAgent(rng), nil
		}, nil
	}
	return nil, fmt.Errorf("unknown agent %q: %w", cfg.Evaluation.Agent, config.ErrInvalidConfig)
}

func createExpectimax(cfg config.Search, goroutines int) *searcher.Expectimax {
	return searcher.NewExpectimax(
		searcher.WithEvaluationFn(game.NewHeuristic(cfg.Weights)),
		searcher.WithGoroutines(goroutines),
		searcher.WithMetrics(),
	)
}

// RunEvaluation plays cfg.Games games, each with a fresh agent.
func RunEvaluation(cfg config.Evaluation, newGame GameFactory, newAgent AgentFactory) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting evaluation of %d games...", cfg.Games)

	for i := 0; i < cfg.Games; i++ {
		session, err := newGame(i)
		if err != nil {
			return gameRecords, moveRecords, fmt.Errorf("failed to start game %d: %w", i+1, err)
		}
		a, err := newAgent()
		if err != nil {
			return gameRecords, moveRecords, fmt.Errorf("failed to create agent for game %d: %w", i+1, err)
		}

		gameMetric, moveMetrics := runGame(session, a, cfg.MaxMoves)
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}

		log.Info().Msgf("completed game %d of %d with score %d and max tile %d",
			i+1, cfg.Games, gameMetric.Score, gameMetric.MaxTile)
	}

	log.Info().Msg("completed evaluation")
	return gameRecords, moveRecords, nil
}

// WriteResults stores an experiment under root/name and returns the run
// directory.
func WriteResults(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if len(configs) > 0 {
		err = writer.WriteAgentConfigs(configs)
		if err != nil {
			return "", fmt.Errorf("failed to store agent configs: %w", err)
		}
		log.Info().Msg("stored agent configs")
	}

	err = writer.WriteGameRecords(games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	err = writer.WriteEvaluationLog(games)
	if err != nil {
		return "", fmt.Errorf("failed to write evaluation log: %w", err)
	}
	log.Info().Msgf("stored results of run %s in %s", writer.RunID(), writer.Dir())

	return writer.Dir(), nil
}

// runGame plays a single game to the end or to maxMoves
func runGame(session *game.Session, a agent.Agent, maxMoves int) (metrics.GameMetric, []metrics.MoveMetric) {
	var e engine.Engine = engine.LocalEngine(session, a, maxMoves)
	return e.Run()
}
