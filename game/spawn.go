package game

import "golang.org/x/exp/rand"

// Spawn probabilities for a new tile
const (
	SpawnTwoProb  = 0.9
	SpawnFourProb = 1 - SpawnTwoProb
)

// Spawner inserts a new tile after a successful move. It must leave a full
// board untouched.
type Spawner interface {
	Spawn(b *Board)
}

// RandomSpawner picks a uniformly random empty cell and sets it to 2 with
// probability 0.9, otherwise 4.
type RandomSpawner struct {
	rng *rand.Rand
}

func NewRandomSpawner(rng *rand.Rand) *RandomSpawner {
	return &RandomSpawner{rng: rng}
}

func (s *RandomSpawner) Spawn(b *Board) {
	SpawnTile(b, s.rng)
}

// SpawnTile is the spawning rule used by RandomSpawner.
func SpawnTile(b *Board, rng *rand.Rand) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return
	}
	cell := empty[rng.Intn(len(empty))]
	value := 2
	if rng.Float64() >= SpawnTwoProb {
		value = 4
	}
	b.cells[cell] = value
}

// Placement selects the Nth empty cell (row-major) and the value to put there.
// Empty wraps around the number of empty cells, so -1 is the last one.
type Placement struct {
	Empty int
	Value int
}

// SequenceSpawner replays a fixed list of placements. Once exhausted it puts
// a 2 in the first empty cell.
type SequenceSpawner struct {
	placements []Placement
	next       int
}

func NewSequenceSpawner(placements ...Placement) *SequenceSpawner {
	return &SequenceSpawner{placements: placements}
}

func (s *SequenceSpawner) Spawn(b *Board) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return
	}
	if s.next >= len(s.placements) {
		b.cells[empty[0]] = 2
		return
	}
	p := s.placements[s.next]
	s.next++
	n := len(empty)
	b.cells[empty[(p.Empty%n+n)%n]] = p.Value
}

// Remaining is the number of placements not yet replayed.
func (s *SequenceSpawner) Remaining() int {
	return len(s.placements) - s.next
}
