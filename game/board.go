package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"tiles/utils"
)

const (
	MinSize = 2
	MaxSize = 16
)

var (
	ErrInvalidSize = errors.New("invalid board size")
	ErrInvalidCell = errors.New("invalid cell value")
)

// StateKey is a row-major serialization of every cell of a board. Two boards
// with the same values in the same positions always have the same key.
type StateKey string

// Board is a square grid of tiles. 0 marks an empty cell; every other cell
// holds a power of two >= 2.
type Board struct {
	size  int
	cells []int // Row-major
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return &Board{size: size, cells: make([]int, size*size)}, nil
}

// FromRows builds a board from a square matrix of tile values.
func FromRows(rows [][]int) (*Board, error) {
	b, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != b.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), b.size)
		}
		for c, v := range row {
			if err := checkCell(v); err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			b.cells[r*b.size+c] = v
		}
	}
	return b, nil
}

// ParseBoard reads row-major cell values separated by commas or whitespace.
// The number of values must be a perfect square.
func ParseBoard(s string) (*Board, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	size := int(math.Sqrt(float64(len(fields))))
	if size*size != len(fields) {
		return nil, fmt.Errorf("%w: %d values do not form a square", ErrInvalidSize, len(fields))
	}

	rows := make([][]int, size)
	for r := range rows {
		rows[r] = make([]int, size)
		for c := range rows[r] {
			v, err := strconv.Atoi(fields[r*size+c])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidCell, fields[r*size+c])
			}
			rows[r][c] = v
		}
	}
	return FromRows(rows)
}

func checkCell(v int) error {
	if v == 0 {
		return nil
	}
	if v < 2 || !utils.IsPowerOfTwo(v) {
		return fmt.Errorf("%w: %d", ErrInvalidCell, v)
	}
	return nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Get(row, col int) int {
	return b.cells[row*b.size+col]
}

// Set places a value without validating it; callers own the power-of-two invariant.
func (b *Board) Set(row, col, value int) {
	b.cells[row*b.size+col] = value
}

func (b *Board) Clone() *Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// EmptyCells returns the row-major indices of all empty cells.
func (b *Board) EmptyCells() []int {
	empty := make([]int, 0, len(b.cells))
	for i, v := range b.cells {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	return empty
}

func (b *Board) EmptyCount() int {
	count := 0
	for _, v := range b.cells {
		if v == 0 {
			count++
		}
	}
	return count
}

func (b *Board) MaxTile() int {
	maxTile := 0
	for _, v := range b.cells {
		if v > maxTile {
			maxTile = v
		}
	}
	return maxTile
}

// Sum is the total of all tile values.
func (b *Board) Sum() int {
	sum := 0
	for _, v := range b.cells {
		sum += v
	}
	return sum
}

// Rows returns a copy of the grid as a matrix.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for r := range rows {
		rows[r] = make([]int, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

func (b *Board) Key() StateKey {
	var sb strings.Builder
	for i, v := range b.cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return StateKey(sb.String())
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			v := b.Get(r, c)
			if v == 0 {
				sb.WriteString("     .")
			} else {
				fmt.Fprintf(&sb, "%6d", v)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
