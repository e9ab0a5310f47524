package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one move search.
type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int64 // Maximizing and chance nodes visited
	Leaves     int64 // Positions scored by the evaluation function
}

// MoveMetric is a SearchMetric tagged with its place in a game.
type MoveMetric struct {
	Step       int
	Direction  string
	ScoreDelta int
	SearchMetric
}

// GameMetric summarises one finished game.
type GameMetric struct {
	Agent     string
	Score     int
	MaxTile   int
	Moves     int
	Fallbacks int // Moves replaced because the agent proposed a no-op
	GameOver  bool
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      m.nodes.Load(),
		Leaves:     m.leaves.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddLeaf()                    {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
