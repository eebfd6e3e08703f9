package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

type boardRenderer interface {
	Render(board *entity.Board) string
}

type humanService struct {
	logger *slog.Logger

	id       entity.ParticipantID
	input    *InputLines
	output   io.Writer
	renderer boardRenderer

	greeted bool
}

// NewHumanService reads moves typed as "row column" from input and prompts on out.
func NewHumanService(logger *slog.Logger, id entity.ParticipantID, input *InputLines, out io.Writer, renderer boardRenderer) Mover {
	return &humanService{
		logger:   logger.With("component", "human", "participant", id),
		id:       id,
		input:    input,
		output:   out,
		renderer: renderer,
	}
}

func (that *humanService) MakeTurn(ctx context.Context, board *entity.Board) error {
	log := that.logger.With("method", "MakeTurn")

	if !that.greeted {
		that.greet()
		that.greeted = true
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("turn aborted: %w", err)
		}

		that.printf("\nCurrent state:\n%s", that.renderer.Render(board))
		that.printf("Player %d, what is your turn?\n", that.id)

		line, err := that.input.Next(ctx)
		if err != nil {
			return err
		}

		row, column, err := parseMove(line)
		if err != nil {
			log.Debug("rejected input", "input", line, "error", err)
			that.printf("%v. Enter it in the form 'row column'.\n", err)
			continue
		}

		if !board.InBounds(row, column) {
			that.printf("Cell %d %d is not on the %dx%d board! Try again!\n", row, column, board.Rows(), board.Columns())
			continue
		}

		if !board.TrySet(row, column, that.id) {
			that.printf("Cell %d %d is already set! Try again!\n", row, column)
			continue
		}

		return nil
	}
}

func (that *humanService) greet() {
	that.printf("Welcome, Player %d!\n", that.id)
	that.printf("If you are asked for input, you should enter it in the form 'row column'.\n")
	that.printf("Row and column numeration starts at 0.\n")
	that.printf("Example: To set the cell at row 0 and column 2, enter '0 2'\n")
}

func (that *humanService) printf(format string, args ...any) {
	// prompts are best effort; a broken terminal surfaces on the next read
	_, _ = fmt.Fprintf(that.output, format, args...)
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 numbers, got %d", len(fields))
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("row %q is not a number", fields[0])
	}

	column, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("column %q is not a number", fields[1])
	}

	return row, column, nil
}
