package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("creating an empty board", func(t *testing.T) {
		b, err := NewBoard(4)

		require.NoError(t, err)
		require.Equal(t, 4, b.Size())
		require.Equal(t, 16, b.EmptyCount(), "All cells should be empty")
	})

	t.Run("rejecting out of range sizes", func(t *testing.T) {
		for _, size := range []int{-1, 0, 1, MaxSize + 1} {
			_, err := NewBoard(size)
			require.ErrorIs(t, err, ErrInvalidSize, "Size %d should be rejected", size)
		}
	})
}

func TestFromRows(t *testing.T) {
	t.Run("rejecting a non-square matrix", func(t *testing.T) {
		_, err := FromRows([][]int{
			{2, 0, 0},
			{0, 0},
			{0, 0, 0},
		})
		require.ErrorIs(t, err, ErrInvalidSize, "Short row should fail instead of padding")
	})

	t.Run("rejecting a row that is too long", func(t *testing.T) {
		_, err := FromRows([][]int{
			{2, 0, 0},
			{0, 0},
		})
		require.ErrorIs(t, err, ErrInvalidSize, "Long row should fail instead of truncating")
	})

	t.Run("rejecting values that are not powers of two", func(t *testing.T) {
		for _, v := range []int{1, 3, 6, -2} {
			_, err := FromRows([][]int{
				{v, 0},
				{0, 0},
			})
			require.ErrorIs(t, err, ErrInvalidCell, "Value %d should be rejected", v)
		}
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("reading row-major values", func(t *testing.T) {
		b, err := ParseBoard("2,0,0,4, 0,0,0,0; 0 0 8 0 0,0,0,2048")

		require.NoError(t, err)
		require.Equal(t, [][]int{
			{2, 0, 0, 4},
			{0, 0, 0, 0},
			{0, 0, 8, 0},
			{0, 0, 0, 2048},
		}, b.Rows())
	})

	t.Run("rejecting a non-square count", func(t *testing.T) {
		_, err := ParseBoard("2,0,0,4,0")
		require.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("rejecting non-numeric values", func(t *testing.T) {
		_, err := ParseBoard("2,x,0,4")
		require.ErrorIs(t, err, ErrInvalidCell)
	})
}

func TestKey(t *testing.T) {
	a := mustBoard(t, [][]int{
		{2, 0},
		{0, 4},
	})
	b := mustBoard(t, [][]int{
		{2, 0},
		{0, 4},
	})
	c := mustBoard(t, [][]int{
		{0, 2},
		{0, 4},
	})

	require.Equal(t, StateKey("2,0,0,4"), a.Key(), "Key should list cells row-major")
	require.Equal(t, a.Key(), b.Key(), "Identical boards should share a key")
	require.NotEqual(t, a.Key(), c.Key(), "Different positions should give different keys")

	key := a.Key()
	a.Set(0, 0, 8)
	require.Equal(t, StateKey("2,0,0,4"), key, "Key should be an immutable snapshot")
}

func TestBoardAccessors(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0, 4},
		{0, 16, 0},
		{8, 0, 2},
	})

	require.Equal(t, 16, b.MaxTile())
	require.Equal(t, 32, b.Sum())
	require.Equal(t, []int{1, 3, 5, 7}, b.EmptyCells())

	clone := b.Clone()
	clone.Set(0, 1, 2)
	require.False(t, clone.Equal(b), "Clone should not share cells")
	require.Equal(t, 0, b.Get(0, 1), "Original should not change")
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"up": Up, "Down": Down, "L": Left, "right": Right, "k": Up, "l": Right,
	} {
		got, err := ParseDirection(input)
		require.NoError(t, err, "Should parse %q", input)
		require.Equal(t, want, got, "Should parse %q", input)
	}

	_, err := ParseDirection("sideways")
	require.Error(t, err)
	require.Equal(t, "Left", Left.String())
}
