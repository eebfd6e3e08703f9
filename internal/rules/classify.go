// Package rules decides whether a board is won, drawn or still in play.
package rules

import "github.com/rocketscienceinc/inarow/internal/entity"

// streak tracks the run of same-participant cells along one scanned line.
type streak struct {
	owner  entity.ParticipantID
	length int
}

// push feeds the next cell of the line and reports whether the run reached need.
func (that *streak) push(cell entity.CellState, need int) bool {
	participant, occupied := cell.Occupant()
	switch {
	case !occupied:
		that.length = 0
	case that.length > 0 && participant == that.owner:
		that.length++
	default:
		that.owner = participant
		that.length = 1
	}

	return that.length >= need
}

// lineChecks run in this order; the first streak found decides the winner.
var lineChecks = [...]func(*entity.Board) (entity.ParticipantID, bool){
	checkHorizontal,
	checkVertical,
	checkDescending,
	checkAscending,
}

// Classify reports the first winning streak on board. Without one, a full board is a draw.
func Classify(board *entity.Board) entity.GameOutcome {
	for _, check := range lineChecks {
		if winner, ok := check(board); ok {
			return entity.Win(winner)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

func checkHorizontal(board *entity.Board) (entity.ParticipantID, bool) {
	for row := 0; row < board.Rows(); row++ {
		if winner, ok := traceLine(board, row, 0, 0, 1); ok {
			return winner, true
		}
	}
	return 0, false
}

func checkVertical(board *entity.Board) (entity.ParticipantID, bool) {
	for column := 0; column < board.Columns(); column++ {
		if winner, ok := traceLine(board, 0, column, 1, 0); ok {
			return winner, true
		}
	}
	return 0, false
}

// checkDescending traces every ↘ diagonal from its upper-left end: the left column and the top row.
func checkDescending(board *entity.Board) (entity.ParticipantID, bool) {
	for row := 0; row < board.Rows(); row++ {
		if winner, ok := traceLine(board, row, 0, 1, 1); ok {
			return winner, true
		}
	}

	for column := 1; column < board.Columns(); column++ {
		if winner, ok := traceLine(board, 0, column, 1, 1); ok {
			return winner, true
		}
	}

	return 0, false
}

// checkAscending traces every ↗ diagonal from its lower-left end: the left column and the bottom row.
func checkAscending(board *entity.Board) (entity.ParticipantID, bool) {
	for row := 0; row < board.Rows(); row++ {
		if winner, ok := traceLine(board, row, 0, -1, 1); ok {
			return winner, true
		}
	}

	bottom := board.Rows() - 1
	for column := 1; column < board.Columns(); column++ {
		if winner, ok := traceLine(board, bottom, column, -1, 1); ok {
			return winner, true
		}
	}

	return 0, false
}

// traceLine walks from (row, column) by (dRow, dColumn) until it leaves the board,
// with a fresh streak.
func traceLine(board *entity.Board, row, column, dRow, dColumn int) (entity.ParticipantID, bool) {
	var run streak
	for ; board.InBounds(row, column); row, column = row+dRow, column+dColumn {
		if run.push(board.Get(row, column), board.WinLength()) {
			return run.owner, true
		}
	}
	return 0, false
}
