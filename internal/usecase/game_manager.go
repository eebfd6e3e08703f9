package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/pkg"
	"github.com/rocketscienceinc/inarow/internal/rules"
)

var ErrSeatsMismatch = errors.New("seats do not match game participants")

type mover interface {
	MakeTurn(ctx context.Context, board *entity.Board) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
}

// Seat binds a participant to whatever produces its moves.
type Seat struct {
	Participant entity.ParticipantID
	Mover       mover
}

type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	resultRepo resultRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, resultRepo resultRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		resultRepo: resultRepo,
	}
}

// NewGame creates and stores an empty game; participants move in the given order.
func (that *GameManager) NewGame(ctx context.Context, rows, columns, winLength int, participants []entity.ParticipantID) (*entity.Game, error) {
	board, err := entity.NewBoard(rows, columns, winLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	game := entity.NewGame(pkg.GenerateGameID(), board, participants)
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Resume loads a stored game and plays it to the end.
func (that *GameManager) Resume(ctx context.Context, id string, seats []Seat) (*entity.Game, entity.GameOutcome, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.InProgress(), fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsFinished() {
		return game, rules.Classify(game.Board), apperror.ErrGameFinished
	}

	outcome, err := that.Play(ctx, game, seats)
	return game, outcome, err
}

// Play asks each seat in turn for a move until the board is won or drawn.
// The snapshot is stored after every move.
func (that *GameManager) Play(ctx context.Context, game *entity.Game, seats []Seat) (entity.GameOutcome, error) {
	log := that.logger.With("method", "Play", "game_id", game.ID)

	if err := checkSeats(game, seats); err != nil {
		return entity.InProgress(), err
	}

	log.Info("game started",
		"rows", game.Board.Rows(),
		"columns", game.Board.Columns(),
		"win_length", game.Board.WinLength(),
	)

	for {
		if err := ctx.Err(); err != nil {
			return entity.InProgress(), fmt.Errorf("game interrupted: %w", err)
		}

		outcome := rules.Classify(game.Board)
		if outcome.IsTerminal() {
			return outcome, that.finish(ctx, game, outcome)
		}

		seat := seats[game.Turn]
		before := game.Board.Duplicate()

		if err := seat.Mover.MakeTurn(ctx, game.Board); err != nil {
			return entity.InProgress(), fmt.Errorf("participant %d failed to make turn: %w", seat.Participant, err)
		}

		move, err := appliedMove(before, game.Board, seat.Participant)
		if err != nil {
			return entity.InProgress(), err
		}

		if err = game.RecordMove(move); err != nil {
			return entity.InProgress(), fmt.Errorf("failed to record move: %w", err)
		}

		if err = that.updateGame(ctx, game); err != nil {
			return entity.InProgress(), err
		}

		log.Debug("move applied", "participant", move.Participant, "row", move.Row, "column", move.Column)
	}
}

func (that *GameManager) finish(ctx context.Context, game *entity.Game, outcome entity.GameOutcome) error {
	log := that.logger.With("method", "finish", "game_id", game.ID)

	game.UpdateGameState(outcome)
	if err := that.updateGame(ctx, game); err != nil {
		return err
	}

	result, err := game.Result()
	if err != nil {
		return fmt.Errorf("failed to build result: %w", err)
	}

	if err = that.resultRepo.Save(ctx, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	that.deleteGame(ctx, game)

	log.Info("game finished", "outcome", outcome.String(), "moves", len(game.Moves))

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "game_id", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}
}

func checkSeats(game *entity.Game, seats []Seat) error {
	if len(seats) != len(game.Participants) {
		return fmt.Errorf("%w: %d seats for %d participants", ErrSeatsMismatch, len(seats), len(game.Participants))
	}

	for i, seat := range seats {
		if seat.Participant != game.Participants[i] {
			return fmt.Errorf("%w: seat %d is participant %d, want %d",
				ErrSeatsMismatch, i, seat.Participant, game.Participants[i])
		}
	}

	return nil
}

// appliedMove finds the single cell participant took between before and after.
func appliedMove(before, after *entity.Board, participant entity.ParticipantID) (entity.Move, error) {
	var taken []entity.Position
	for _, position := range before.CellsWithState(entity.EmptyCell()) {
		if !after.Get(position.Row, position.Column).IsEmpty() {
			taken = append(taken, position)
		}
	}

	if len(taken) != 1 {
		return entity.Move{}, fmt.Errorf("%w: participant %d changed %d cells", apperror.ErrIllegalTurn, participant, len(taken))
	}

	position := taken[0]
	if after.Get(position.Row, position.Column) != entity.OccupiedBy(participant) {
		return entity.Move{}, fmt.Errorf("%w: participant %d placed a foreign mark at %d %d",
			apperror.ErrIllegalTurn, participant, position.Row, position.Column)
	}

	return entity.Move{Participant: participant, Row: position.Row, Column: position.Column}, nil
}
