package service

import (
	"fmt"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/rules"
)

// Verdict is a game result seen from one participant's side.
type Verdict int

const (
	VerdictLose Verdict = iota
	VerdictDraw
	VerdictWin
)

// Invert returns the same result seen from the other side.
func (that Verdict) Invert() Verdict {
	switch that {
	case VerdictWin:
		return VerdictLose
	case VerdictLose:
		return VerdictWin
	default:
		return VerdictDraw
	}
}

func (that Verdict) String() string {
	switch that {
	case VerdictWin:
		return "win"
	case VerdictLose:
		return "lose"
	default:
		return "draw"
	}
}

type candidate struct {
	move  entity.Position
	depth int
}

type searchResult struct {
	verdict Verdict
	move    *entity.Position
	depth   int
}

// ChooseMove searches the whole game tree and returns self's move with its forced result.
// Among moves with the same result the first one in row-major order wins.
// It panics if board has no move to offer.
func ChooseMove(board *entity.Board, self, opponent entity.ParticipantID) (entity.Position, Verdict) {
	result := search(board, self, opponent, 0)
	if result.move == nil {
		panic(fmt.Errorf("%w: board is already %s", apperror.ErrNoLegalMove, rules.Classify(board)))
	}

	return *result.move, result.verdict
}

func search(board *entity.Board, mover, other entity.ParticipantID, depth int) searchResult {
	outcome := rules.Classify(board)
	if outcome.IsTerminal() {
		return searchResult{verdict: evaluate(outcome, mover), depth: depth}
	}

	var wins, draws, losses []candidate
	for _, position := range board.CellsWithState(entity.EmptyCell()) {
		next := board.Duplicate()
		next.TrySet(position.Row, position.Column, mover)

		reply := search(next, other, mover, depth+1)
		found := candidate{move: position, depth: reply.depth}

		// the reply is scored for other, who moves next
		switch reply.verdict.Invert() {
		case VerdictWin:
			wins = append(wins, found)
		case VerdictDraw:
			draws = append(draws, found)
		case VerdictLose:
			losses = append(losses, found)
		}
	}

	switch {
	case len(wins) > 0:
		return pick(VerdictWin, wins[0])
	case len(draws) > 0:
		return pick(VerdictDraw, draws[0])
	case len(losses) > 0:
		return pick(VerdictLose, losses[0])
	default:
		panic(fmt.Errorf("%w: %d cells left", apperror.ErrNoLegalMove, len(board.CellsWithState(entity.EmptyCell()))))
	}
}

func pick(verdict Verdict, chosen candidate) searchResult {
	move := chosen.move
	return searchResult{verdict: verdict, move: &move, depth: chosen.depth}
}

// evaluate translates a terminal outcome into a verdict for perspective.
func evaluate(outcome entity.GameOutcome, perspective entity.ParticipantID) Verdict {
	winner, ok := outcome.Winner()
	switch {
	case !ok:
		return VerdictDraw
	case winner == perspective:
		return VerdictWin
	default:
		return VerdictLose
	}
}
