package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// Mover applies exactly one move to an in-progress board.
type Mover interface {
	MakeTurn(ctx context.Context, board *entity.Board) error
}

type BotService interface {
	Mover
	ChooseMove(board *entity.Board) (entity.Position, Verdict)
}

type botService struct {
	logger *slog.Logger

	self     entity.ParticipantID
	opponent entity.ParticipantID
}

func NewBotService(logger *slog.Logger, self, opponent entity.ParticipantID) BotService {
	return &botService{
		logger:   logger.With("component", "bot", "participant", self),
		self:     self,
		opponent: opponent,
	}
}

func (that *botService) ChooseMove(board *entity.Board) (entity.Position, Verdict) {
	return ChooseMove(board, that.self, that.opponent)
}

func (that *botService) MakeTurn(_ context.Context, board *entity.Board) error {
	log := that.logger.With("method", "MakeTurn")

	result := search(board, that.self, that.opponent, 0)
	if result.move == nil {
		panic(fmt.Errorf("%w: bot %d asked to move on a finished board", apperror.ErrNoLegalMove, that.self))
	}

	move := *result.move
	if !board.TrySet(move.Row, move.Column, that.self) {
		panic(fmt.Errorf("%w: bot %d at %d %d", apperror.ErrMoveRejected, that.self, move.Row, move.Column))
	}

	log.Debug("bot made turn",
		"row", move.Row,
		"column", move.Column,
		"verdict", result.verdict.String(),
		"plies", result.depth,
	)

	return nil
}
