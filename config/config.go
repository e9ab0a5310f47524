package config

import (
	"errors"
	"fmt"
	"os"
	"tiles/game"
	"tiles/meta"
	"tiles/utils"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Agents that can be selected for evaluation.
var Agents = []string{"expectimax", "qtable", "greedy", "random"}

type Config struct {
	BoardSize  int        `yaml:"board_size"`
	Seed       uint64     `yaml:"seed"` // 0 picks a random seed
	Search     Search     `yaml:"search"`
	Training   Training   `yaml:"training"`
	Evaluation Evaluation `yaml:"evaluation"`
	Log        Log        `yaml:"log"`
}

type Search struct {
	Depth      int          `yaml:"depth"`
	Goroutines int          `yaml:"goroutines"`
	Weights    game.Weights `yaml:"weights"`
}

type Training struct {
	Episodes     int     `yaml:"episodes"`
	LearningRate float64 `yaml:"learning_rate"`
	Discount     float64 `yaml:"discount"`
	Epsilon      float64 `yaml:"epsilon"`
	EpsilonDecay float64 `yaml:"epsilon_decay"`
	MinEpsilon   float64 `yaml:"min_epsilon"` // 0 disables the floor
	MaxSteps     int     `yaml:"max_steps"`
	LogEvery     int     `yaml:"log_every"`
	TablePath    string  `yaml:"table_path"`
}

type Evaluation struct {
	Games     int    `yaml:"games"`
	Agent     string `yaml:"agent"`
	MaxMoves  int    `yaml:"max_moves"`
	OutputDir string `yaml:"output_dir"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Default() Config {
	return Config{
		BoardSize: meta.BOARD_SIZE,
		Search: Search{
			Depth:      meta.SEARCH_DEPTH,
			Goroutines: meta.GO_ROUTINES,
			Weights:    game.DefaultWeights,
		},
		Training: Training{
			Episodes:     meta.EPISODES,
			LearningRate: 0.1,
			Discount:     0.9,
			Epsilon:      1.0,
			EpsilonDecay: 0.995,
			MinEpsilon:   0.01,
			MaxSteps:     meta.MAX_STEPS,
			LogEvery:     100,
			TablePath:    meta.TABLE_PATH,
		},
		Evaluation: Evaluation{
			Games:     meta.EVAL_GAMES,
			Agent:     "expectimax",
			MaxMoves:  meta.MAX_MOVES,
			OutputDir: "experiments",
		},
		Log: Log{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values, except that the default min_epsilon is lowered to a
// configured epsilon below it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// The default floor follows a lowered epsilon; an explicit one is validated
	var explicit struct {
		Training struct {
			MinEpsilon *float64 `yaml:"min_epsilon"`
		} `yaml:"training"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if explicit.Training.MinEpsilon == nil && cfg.Training.MinEpsilon > cfg.Training.Epsilon {
		cfg.Training.MinEpsilon = cfg.Training.Epsilon
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.BoardSize < game.MinSize || c.BoardSize > game.MaxSize:
		return fmt.Errorf("%w: board_size %d outside [%d, %d]", ErrInvalidConfig, c.BoardSize, game.MinSize, game.MaxSize)
	case c.Search.Depth < 1:
		return fmt.Errorf("%w: search.depth must be at least 1", ErrInvalidConfig)
	case c.Search.Goroutines < 1:
		return fmt.Errorf("%w: search.goroutines must be at least 1", ErrInvalidConfig)
	case c.Training.Episodes < 0:
		return fmt.Errorf("%w: training.episodes must not be negative", ErrInvalidConfig)
	case c.Training.LearningRate <= 0 || c.Training.LearningRate > 1:
		return fmt.Errorf("%w: training.learning_rate must be in (0, 1]", ErrInvalidConfig)
	case c.Training.Discount < 0 || c.Training.Discount > 1:
		return fmt.Errorf("%w: training.discount must be in [0, 1]", ErrInvalidConfig)
	case c.Training.Epsilon < 0 || c.Training.Epsilon > 1:
		return fmt.Errorf("%w: training.epsilon must be in [0, 1]", ErrInvalidConfig)
	case c.Training.EpsilonDecay <= 0 || c.Training.EpsilonDecay > 1:
		return fmt.Errorf("%w: training.epsilon_decay must be in (0, 1]", ErrInvalidConfig)
	case c.Training.MinEpsilon < 0 || c.Training.MinEpsilon > c.Training.Epsilon:
		return fmt.Errorf("%w: training.min_epsilon must be in [0, epsilon]", ErrInvalidConfig)
	case c.Evaluation.Games < 1:
		return fmt.Errorf("%w: evaluation.games must be at least 1", ErrInvalidConfig)
	case utils.FindIndex(Agents, c.Evaluation.Agent) < 0:
		return fmt.Errorf("%w: unknown evaluation.agent %q", ErrInvalidConfig, c.Evaluation.Agent)
	}
	return nil
}
