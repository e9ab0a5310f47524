package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"tiles/config"
	"tiles/experiments"
	"tiles/game"
	"tiles/qlearn"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred profiling still stops.
func run() error {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "evaluate", "One of train, evaluate, throughput, suggest")
	board := flag.String("board", "", "Row-major board for suggest, e.g. \"2,0,0,0,...\"")
	agentName := flag.String("agent", "", "Agent override for evaluate and suggest")
	withProfile := flag.Bool("profile", false, "Write a CPU profile to the working directory")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	if *agentName != "" {
		cfg.Evaluation.Agent = *agentName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	setupLogging(cfg.Log)

	if *withProfile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if cfg.Seed == 0 {
		cfg.Seed = frand.Uint64n(1<<63) + 1
	}
	log.Info().Msgf("using seed %d", cfg.Seed)

	var err error
	switch *mode {
	case "train":
		err = train(cfg)
	case "evaluate":
		err = evaluate(cfg)
	case "throughput":
		err = throughput(cfg)
	case "suggest":
		err = suggest(cfg, *board)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", *mode, err)
	}
	return nil
}

func setupLogging(cfg config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// seededGames starts game i from seed+i so that every agent sees the same
// tile sequence for the same game.
func seededGames(cfg config.Config) experiments.GameFactory {
	return func(i int) (*game.Session, error) {
		rng := rand.New(rand.NewSource(cfg.Seed + uint64(i)))
		return game.NewGame(cfg.BoardSize, game.NewRandomSpawner(rng))
	}
}

// loadTable resumes from cfg.Training.TablePath. Only a missing file starts a
// fresh table; an unreadable table or one for another board size is an error
// so that training never overwrites it.
func loadTable(cfg config.Config) (*qlearn.Table, error) {
	table, err := qlearn.LoadFile(cfg.Training.TablePath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Msgf("no table at %s, starting fresh", cfg.Training.TablePath)
		return qlearn.NewTable(cfg.BoardSize), nil
	}
	if err != nil {
		return nil, err
	}
	if table.Size() != cfg.BoardSize {
		return nil, fmt.Errorf("table %s is for %dx%d boards, not %dx%d: %w", cfg.Training.TablePath,
			table.Size(), table.Size(), cfg.BoardSize, cfg.BoardSize, qlearn.ErrTableFormat)
	}
	log.Info().Msgf("resuming from %s with %d states", cfg.Training.TablePath, table.Len())
	return table, nil
}

func train(cfg config.Config) error {
	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	trainer := qlearn.NewTrainer(table,
		qlearn.WithLearningRate(cfg.Training.LearningRate),
		qlearn.WithDiscount(cfg.Training.Discount),
		qlearn.WithEpsilon(cfg.Training.Epsilon),
		qlearn.WithEpsilonDecay(cfg.Training.EpsilonDecay),
		qlearn.WithMinEpsilon(cfg.Training.MinEpsilon),
		qlearn.WithRand(rng),
	)

	newGame := func() (*game.Session, error) {
		return game.NewGame(cfg.BoardSize, game.NewRandomSpawner(rng))
	}
	episodes, err := trainer.Train(newGame, qlearn.TrainOptions{
		Episodes: cfg.Training.Episodes,
		MaxSteps: cfg.Training.MaxSteps,
		LogEvery: cfg.Training.LogEvery,
	})
	if err != nil {
		return err
	}

	if err := table.SaveFile(cfg.Training.TablePath); err != nil {
		return err
	}
	log.Info().Msgf("trained %d episodes, saved %d states to %s", len(episodes), table.Len(), cfg.Training.TablePath)
	return nil
}

func evaluate(cfg config.Config) error {
	newAgent, err := experiments.NewAgentFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	games, moves, err := experiments.RunEvaluation(cfg.Evaluation, seededGames(cfg), newAgent)
	if err != nil {
		return err
	}
	_, err = experiments.WriteResults(cfg.Evaluation.OutputDir, "evaluation", nil, games, moves)
	return err
}

func throughput(cfg config.Config) error {
	configs, games, moves, err := experiments.RunThroughputExperiment(cfg, seededGames(cfg), experiments.DefaultGoroutines)
	if err != nil {
		return err
	}
	_, err = experiments.WriteResults(cfg.Evaluation.OutputDir, "throughput", configs, games, moves)
	return err
}

func suggest(cfg config.Config, input string) error {
	if input == "" {
		return fmt.Errorf("suggest needs -board")
	}
	b, err := game.ParseBoard(input)
	if err != nil {
		return err
	}
	cfg.BoardSize = b.Size()

	newAgent, err := experiments.NewAgentFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	a, err := newAgent()
	if err != nil {
		return err
	}

	fmt.Println(b)
	move, ok := a.FindMove(b)
	if !ok {
		fmt.Println("no legal move: game over")
		return nil
	}
	if _, result := game.Simulate(b, move); !result.Changed {
		log.Warn().Msgf("%s suggests %s which does not change the board", a.Name(), move)
	}
	fmt.Printf("%s suggests %s\n", a.Name(), move)
	return nil
}
