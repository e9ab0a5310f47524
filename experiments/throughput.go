package experiments

import (
	"fmt"
	"tiles/config"
	"tiles/experiments/metrics"
	"tiles/searcher/agent"

	"github.com/rs/zerolog/log"
)

// DefaultGoroutines are the parallel search settings compared by the
// throughput experiment.
var DefaultGoroutines = []int{1, 2, 4}

// RunThroughputExperiment plays the same games with expectimax at each
// goroutine count and records per-move search metrics. Results are identical
// across counts; only nodes per second should differ.
func RunThroughputExperiment(cfg config.Config, newGame GameFactory, goroutines []int) ([]metrics.AgentConfig, []metrics.GameRecord, []metrics.MoveRecord, error) {
	configs := make([]metrics.AgentConfig, 0, len(goroutines))
	for i, g := range goroutines {
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 1,
			Agent:      "expectimax",
			Depth:      cfg.Search.Depth,
			Goroutines: g,
		})
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msg("starting throughput experiment...")

	for _, ac := range configs {
		log.Info().Msgf("starting agent %+v...", ac)

		for i := 0; i < cfg.Evaluation.Games; i++ {
			session, err := newGame(i)
			if err != nil {
				return configs, gameRecords, moveRecords, fmt.Errorf("failed to start game %d: %w", i+1, err)
			}
			a := agent.NewExpectimaxAgent(createExpectimax(cfg.Search, ac.Goroutines), ac.Depth)

			gameMetric, moveMetrics := runGame(session, a, cfg.Evaluation.MaxMoves)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent:      ac.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed game %d of %d with score %d in %s", i+1, cfg.Evaluation.Games, gameMetric.Score, gameMetric.Duration)
		}
	}

	log.Info().Msg("completed throughput experiment")
	return configs, gameRecords, moveRecords, nil
}
