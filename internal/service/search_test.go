package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/rules"
)

const (
	engine   entity.ParticipantID = 1
	opponent entity.ParticipantID = 2
)

// layout builds a board from rows of 'x' (engine), 'o' (opponent) and '.' (empty).
func layout(t *testing.T, winLength int, pattern ...string) *entity.Board {
	t.Helper()

	board, err := entity.NewBoard(len(pattern), len(pattern[0]), winLength)
	require.NoError(t, err)

	for row, line := range pattern {
		for column, mark := range line {
			switch mark {
			case 'x':
				require.True(t, board.TrySet(row, column, engine))
			case 'o':
				require.True(t, board.TrySet(row, column, opponent))
			}
		}
	}

	return board
}

func TestVerdict_Invert(t *testing.T) {
	assert.Equal(t, VerdictLose, VerdictWin.Invert())
	assert.Equal(t, VerdictWin, VerdictLose.Invert())
	assert.Equal(t, VerdictDraw, VerdictDraw.Invert())
	assert.Equal(t, "win", VerdictWin.String())
}

func TestChooseMove(t *testing.T) {
	t.Run("Empty classic board is a draw, first cell first", func(t *testing.T) {
		board := layout(t, 3,
			"...",
			"...",
			"...",
		)

		move, verdict := ChooseMove(board, engine, opponent)

		assert.Equal(t, entity.Position{Row: 0, Column: 0}, move)
		assert.Equal(t, VerdictDraw, verdict)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		board := layout(t, 3,
			"xx.",
			"oo.",
			"...",
		)

		move, verdict := ChooseMove(board, engine, opponent)

		assert.Equal(t, entity.Position{Row: 0, Column: 2}, move)
		assert.Equal(t, VerdictWin, verdict)
	})

	t.Run("Blocks the opponent", func(t *testing.T) {
		board := layout(t, 3,
			"x..",
			"oo.",
			".x.",
		)

		move, verdict := ChooseMove(board, engine, opponent)

		assert.Equal(t, entity.Position{Row: 1, Column: 2}, move)
		assert.NotEqual(t, VerdictLose, verdict)
	})

	t.Run("Admits a forced loss", func(t *testing.T) {
		// Given: the opponent threatens two lines at once
		board := layout(t, 3,
			"oo.",
			"o.x",
			".x.",
		)

		// When: the engine moves
		move, verdict := ChooseMove(board, engine, opponent)

		// Then: every move loses and the first one is taken
		assert.Equal(t, entity.Position{Row: 0, Column: 2}, move)
		assert.Equal(t, VerdictLose, verdict)
	})

	t.Run("Last empty cell is the only choice", func(t *testing.T) {
		board := layout(t, 3,
			"xox",
			"xoo",
			"ox.",
		)

		move, verdict := ChooseMove(board, engine, opponent)

		assert.Equal(t, entity.Position{Row: 2, Column: 2}, move)
		assert.Equal(t, VerdictDraw, verdict)
	})

	t.Run("Does not change the board", func(t *testing.T) {
		board := layout(t, 3,
			"x..",
			".o.",
			"...",
		)
		before := board.Duplicate()

		ChooseMove(board, engine, opponent)

		assert.Equal(t, before, board)
	})

	t.Run("Panics on a finished board", func(t *testing.T) {
		board := layout(t, 3,
			"xxx",
			"oo.",
			"...",
		)

		defer func() {
			recovered := recover()
			require.NotNil(t, recovered)

			err, ok := recovered.(error)
			require.True(t, ok)
			require.ErrorIs(t, err, apperror.ErrNoLegalMove)
		}()

		ChooseMove(board, engine, opponent)
	})
}

func TestChooseMove_Unopposed(t *testing.T) {
	// Given: an empty classic board and nobody answering
	board := layout(t, 3,
		"...",
		"...",
		"...",
	)

	// When: the engine keeps moving alone
	for turn := 0; turn < board.Rows()*board.Columns(); turn++ {
		if rules.Classify(board).IsTerminal() {
			break
		}

		move, _ := ChooseMove(board, engine, opponent)
		require.True(t, board.TrySet(move.Row, move.Column, engine))
	}

	// Then: it wins
	assert.Equal(t, entity.Win(engine), rules.Classify(board))
}

func TestChooseMove_PrefersWinOverDraw(t *testing.T) {
	// Given: a 1x4 strip needing two where the engine already holds one end
	board := layout(t, 2,
		"x..o",
	)

	// When: the engine moves
	move, verdict := ChooseMove(board, engine, opponent)

	// Then: it completes the pair
	assert.Equal(t, entity.Position{Row: 0, Column: 1}, move)
	assert.Equal(t, VerdictWin, verdict)
}
