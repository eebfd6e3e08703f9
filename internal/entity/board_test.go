package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inarow/internal/apperror"
)

func newBoard(t *testing.T, rows, columns, winLength int) *Board {
	t.Helper()

	board, err := NewBoard(rows, columns, winLength)
	require.NoError(t, err)

	return board
}

func TestNewBoard(t *testing.T) {
	t.Run("Every cell starts empty", func(t *testing.T) {
		// Given: a 2x3 board
		board := newBoard(t, 2, 3, 2)

		// Then: all six cells are empty
		assert.Equal(t, 2, board.Rows())
		assert.Equal(t, 3, board.Columns())
		assert.Equal(t, 2, board.WinLength())
		assert.Len(t, board.CellsWithState(EmptyCell()), 6)
		assert.False(t, board.IsFull())
	})

	t.Run("Rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
			_, err := NewBoard(dims[0], dims[1], 3)
			require.ErrorIs(t, err, apperror.ErrInvalidDimensions)
		}
	})

	t.Run("Win length is not checked against dimensions", func(t *testing.T) {
		board, err := NewBoard(2, 2, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, board.WinLength())
	})
}

func TestBoard_TrySet(t *testing.T) {
	t.Run("Occupies an empty cell", func(t *testing.T) {
		board := newBoard(t, 3, 3, 3)

		ok := board.TrySet(1, 2, 7)

		require.True(t, ok)
		assert.Equal(t, OccupiedBy(7), board.Get(1, 2))
		assert.Equal(t, EmptyCell(), board.Get(2, 1))
	})

	t.Run("Never overwrites an occupied cell", func(t *testing.T) {
		// Given: a cell owned by participant 1
		board := newBoard(t, 3, 3, 3)
		require.True(t, board.TrySet(0, 0, 1))

		// When: both participants try to take it again
		again := board.TrySet(0, 0, 1)
		other := board.TrySet(0, 0, 2)

		// Then: both attempts fail and the owner is unchanged
		assert.False(t, again)
		assert.False(t, other)
		assert.Equal(t, OccupiedBy(1), board.Get(0, 0))
	})

	t.Run("Panics outside the board", func(t *testing.T) {
		board := newBoard(t, 3, 3, 3)

		assert.Panics(t, func() { board.TrySet(3, 0, 1) })
		assert.Panics(t, func() { board.TrySet(0, -1, 1) })
	})
}

func TestBoard_Get(t *testing.T) {
	t.Run("Out of range access panics with ErrOutOfBounds", func(t *testing.T) {
		board := newBoard(t, 3, 3, 3)

		defer func() {
			recovered := recover()
			require.NotNil(t, recovered)

			err, ok := recovered.(error)
			require.True(t, ok)
			require.ErrorIs(t, err, apperror.ErrOutOfBounds)
			assert.Contains(t, err.Error(), "the row count is 3 but the row accessed is 5")
		}()

		board.Get(5, 0)
	})

	t.Run("InBounds matches the dimensions", func(t *testing.T) {
		board := newBoard(t, 2, 4, 2)

		assert.True(t, board.InBounds(1, 3))
		assert.False(t, board.InBounds(2, 0))
		assert.False(t, board.InBounds(0, 4))
		assert.False(t, board.InBounds(-1, 0))
	})
}

func TestBoard_CellsWithState(t *testing.T) {
	// Given: a board with a few marks
	board := newBoard(t, 3, 3, 3)
	require.True(t, board.TrySet(2, 0, 1))
	require.True(t, board.TrySet(0, 2, 1))
	require.True(t, board.TrySet(1, 1, 2))

	t.Run("Occupied cells come in row-major order", func(t *testing.T) {
		assert.Equal(t, []Position{{Row: 0, Column: 2}, {Row: 2, Column: 0}}, board.CellsWithState(OccupiedBy(1)))
		assert.Equal(t, []Position{{Row: 1, Column: 1}}, board.CellsWithState(OccupiedBy(2)))
	})

	t.Run("Empty cells skip occupied ones", func(t *testing.T) {
		assert.Equal(t, []Position{
			{Row: 0, Column: 0}, {Row: 0, Column: 1},
			{Row: 1, Column: 0}, {Row: 1, Column: 2},
			{Row: 2, Column: 1}, {Row: 2, Column: 2},
		}, board.CellsWithState(EmptyCell()))
	})

	t.Run("Unknown participant has no cells", func(t *testing.T) {
		assert.Empty(t, board.CellsWithState(OccupiedBy(9)))
	})
}

func TestBoard_Duplicate(t *testing.T) {
	// Given: a board and its copy
	board := newBoard(t, 3, 3, 3)
	require.True(t, board.TrySet(0, 0, 1))
	duplicate := board.Duplicate()

	// When: both are changed independently
	require.True(t, duplicate.TrySet(1, 1, 2))
	require.True(t, board.TrySet(2, 2, 1))

	// Then: neither sees the other's change
	assert.Equal(t, OccupiedBy(1), duplicate.Get(0, 0))
	assert.Equal(t, EmptyCell(), board.Get(1, 1))
	assert.Equal(t, EmptyCell(), duplicate.Get(2, 2))
	assert.Equal(t, board.WinLength(), duplicate.WinLength())
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Keeps dimensions and owners", func(t *testing.T) {
		board := newBoard(t, 2, 3, 2)
		require.True(t, board.TrySet(0, 1, 1))
		require.True(t, board.TrySet(1, 2, 2))

		data, err := json.Marshal(board)
		require.NoError(t, err)
		assert.JSONEq(t, `{"rows":2,"columns":3,"win_length":2,"cells":[null,1,null,null,null,2]}`, string(data))

		var decoded Board
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, board, &decoded)
	})

	t.Run("Rejects a cell count that does not fit", func(t *testing.T) {
		var decoded Board
		err := json.Unmarshal([]byte(`{"rows":2,"columns":2,"win_length":2,"cells":[null,1]}`), &decoded)

		require.Error(t, err)
	})

	t.Run("Rejects empty dimensions", func(t *testing.T) {
		var decoded Board
		err := json.Unmarshal([]byte(`{"rows":0,"columns":2,"win_length":2,"cells":[]}`), &decoded)

		require.ErrorIs(t, err, apperror.ErrInvalidDimensions)
	})
}
