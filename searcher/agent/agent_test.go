package agent

import (
	"testing"
	"tiles/game"
	"tiles/qlearn"
	"tiles/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustBoard(t *testing.T, rows [][]int) *game.Board {
	t.Helper()
	b, err := game.FromRows(rows)
	require.NoError(t, err, "Board should be valid")
	return b
}

func TestExpectimaxAgent(t *testing.T) {
	b := mustBoard(t, [][]int{
		{0, 0, 0, 0},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
	})
	a := NewExpectimaxAgent(searcher.NewExpectimax(), searcher.DefaultDepth)

	got, ok := a.FindMove(b)

	require.True(t, ok)
	require.Equal(t, game.Up, got, "Only legal move should be chosen")
	require.Equal(t, "expectimax", a.Name())
}

func TestTableAgent(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0},
		{0, 4},
	})
	table := qlearn.NewTable(2)
	table.Set(b.Key(), qlearn.Values{0, 0, 0, 3})
	a := NewTableAgent(table)

	got, ok := a.FindMove(b)
	require.True(t, ok)
	require.Equal(t, game.Right, got, "Highest stored value should be played")

	unseen := mustBoard(t, [][]int{
		{0, 0},
		{0, 2},
	})
	got, ok = a.FindMove(unseen)
	require.True(t, ok, "Table agent always suggests a direction")
	require.Equal(t, game.Up, got)
	require.Equal(t, 1, table.Len(), "Inference should not grow the table")
}

func TestGreedyAgent(t *testing.T) {
	t.Run("preferring the move that frees the most cells", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{2, 2, 0, 0},
			{4, 0, 0, 0},
			{4, 0, 0, 0},
			{0, 0, 0, 0},
		})

		got, ok := NewGreedyAgent(nil).FindMove(b)

		// Up and Down both merge the 4s into an 8; Up is tried first
		require.True(t, ok)
		require.Equal(t, game.Up, got)
	})

	t.Run("reporting no move on a stalemate board", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{2, 4},
			{4, 2},
		})

		_, ok := NewGreedyAgent(game.EvaluateHeuristic).FindMove(b)

		require.False(t, ok)
	})
}

func TestRandomAgent(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	a := NewRandomAgent(rand.New(rand.NewSource(8)))

	for i := 0; i < 50; i++ {
		got, ok := a.FindMove(b)
		require.True(t, ok)
		require.Contains(t, []game.Direction{game.Down, game.Right}, got, "Only legal moves should be picked")
	}
}
