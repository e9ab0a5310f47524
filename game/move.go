package game

// MoveResult reports the effect of sliding a board in one direction.
type MoveResult struct {
	Changed    bool
	ScoreDelta int
}

// Apply slides every line of the board in direction d, merging equal
// neighbours at most once per tile. It never spawns a tile: callers spawn only
// when the result reports Changed.
func Apply(b *Board, d Direction) MoveResult {
	var result MoveResult
	line := make([]int, b.size)
	positions := make([]int, b.size)

	for i := 0; i < b.size; i++ {
		linePositions(b.size, d, i, positions)
		for j, pos := range positions {
			line[j] = b.cells[pos]
		}

		compress(line)
		result.ScoreDelta += merge(line)
		compress(line)

		for j, pos := range positions {
			if b.cells[pos] != line[j] {
				result.Changed = true
				b.cells[pos] = line[j]
			}
		}
	}
	return result
}

// linePositions fills out with the cell indices of the ith line of a board,
// ordered so that index 0 is the edge tiles slide towards.
func linePositions(size int, d Direction, i int, out []int) {
	for j := 0; j < size; j++ {
		switch d {
		case Left:
			out[j] = i*size + j
		case Right:
			out[j] = i*size + (size - 1 - j)
		case Up:
			out[j] = j*size + i
		case Down:
			out[j] = (size-1-j)*size + i
		default:
			panic("unexpected direction")
		}
	}
}

// compress moves nonzero values to the front, keeping their order, and
// zero-fills the rest.
func compress(line []int) {
	n := 0
	for _, v := range line {
		if v != 0 {
			line[n] = v
			n++
		}
	}
	for ; n < len(line); n++ {
		line[n] = 0
	}
}

// merge combines equal neighbours of a compressed line and returns the score
// gained. The zero left behind a merge stops the combined tile from merging
// again in the same pass.
func merge(line []int) int {
	score := 0
	for i := 0; i < len(line)-1; i++ {
		if line[i] != 0 && line[i] == line[i+1] {
			line[i] *= 2
			line[i+1] = 0
			score += line[i]
		}
	}
	return score
}

// CanMove reports whether any move can change the board: an empty cell or a
// pair of adjacent equal tiles.
func CanMove(b *Board) bool {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			v := b.Get(r, c)
			if v == 0 {
				return true
			}
			if c < b.size-1 && v == b.Get(r, c+1) {
				return true
			}
			if r < b.size-1 && v == b.Get(r+1, c) {
				return true
			}
		}
	}
	return false
}

// IsGameOver is the negation of CanMove.
func IsGameOver(b *Board) bool {
	return !CanMove(b)
}

// Simulate applies d to a copy of b and returns the copy with the result.
func Simulate(b *Board, d Direction) (*Board, MoveResult) {
	next := b.Clone()
	return next, Apply(next, d)
}

// LegalMoves lists, in enumeration order, the directions that change the board.
func LegalMoves(b *Board) []Direction {
	moves := make([]Direction, 0, NumDirections)
	for _, d := range Directions {
		if _, result := Simulate(b, d); result.Changed {
			moves = append(moves, d)
		}
	}
	return moves
}
