package qlearn

import (
	"tiles/game"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Hyperparameter defaults
const (
	DefaultLearningRate = 0.1
	DefaultDiscount     = 0.9
	DefaultEpsilon      = 1.0
	DefaultEpsilonDecay = 0.995
	DefaultMinEpsilon   = 0.01
)

type Option func(t *Trainer)

func WithLearningRate(lr float64) Option {
	return func(t *Trainer) {
		if lr > 0 {
			t.learningRate = lr
		}
	}
}

func WithDiscount(gamma float64) Option {
	return func(t *Trainer) {
		if gamma >= 0 && gamma <= 1 {
			t.discount = gamma
		}
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(t *Trainer) {
		if epsilon >= 0 && epsilon <= 1 {
			t.epsilon = epsilon
		}
	}
}

func WithEpsilonDecay(decay float64) Option {
	return func(t *Trainer) {
		if decay > 0 && decay <= 1 {
			t.epsilonDecay = decay
		}
	}
}

// WithMinEpsilon sets the exploration floor. 0 disables the floor.
func WithMinEpsilon(floor float64) Option {
	return func(t *Trainer) {
		if floor >= 0 && floor <= 1 {
			t.minEpsilon = floor
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(t *Trainer) {
		if rng != nil {
			t.rng = rng
		}
	}
}

// Trainer runs tabular Q-learning with an epsilon-greedy policy.
type Trainer struct {
	table        *Table
	learningRate float64
	discount     float64
	epsilon      float64
	epsilonDecay float64
	minEpsilon   float64
	rng          *rand.Rand
}

func NewTrainer(table *Table, options ...Option) *Trainer {
	t := &Trainer{ // Default values
		table:        table,
		learningRate: DefaultLearningRate,
		discount:     DefaultDiscount,
		epsilon:      DefaultEpsilon,
		epsilonDecay: DefaultEpsilonDecay,
		minEpsilon:   DefaultMinEpsilon,
		rng:          rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *Trainer) Table() *Table {
	return t.table
}

func (t *Trainer) Epsilon() float64 {
	return t.epsilon
}

// ChooseAction explores a uniformly random direction with probability
// epsilon and otherwise exploits the highest stored value.
func (t *Trainer) ChooseAction(b *game.Board) game.Direction {
	values := t.table.entry(b.Key())
	if t.rng.Float64() < t.epsilon {
		return game.Directions[t.rng.Intn(game.NumDirections)]
	}
	return Greedy(*values)
}

// UpdateQ applies one temporal-difference step to Q(state, action). The
// future term is dropped when done is set.
func (t *Trainer) UpdateQ(state *game.Board, action game.Direction, reward float64, next *game.Board, done bool) {
	current := t.table.entry(state.Key())
	future := t.table.entry(next.Key())

	target := reward
	if !done {
		target += t.discount * floats.Max(future[:])
	}
	current[action] += t.learningRate * (target - current[action])
}

// DecayEpsilon shrinks epsilon once, never below the configured floor.
func (t *Trainer) DecayEpsilon() {
	t.epsilon *= t.epsilonDecay
	if t.epsilon < t.minEpsilon {
		t.epsilon = t.minEpsilon
	}
}

// Greedy returns the direction with the highest value; ties go to the
// earliest direction.
func Greedy(values Values) game.Direction {
	return game.Directions[floats.MaxIdx(values[:])]
}
