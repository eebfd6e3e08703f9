package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/inarow/internal/apperror"
)

// Board is a rows x columns grid stored row-major. A cell is written at most once.
type Board struct {
	rows      int
	columns   int
	winLength int
	cells     []CellState
}

// NewBoard returns an empty board. winLength is not checked against the dimensions:
// a board that can never hold a long enough streak just ends in a draw.
func NewBoard(rows, columns, winLength int) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidDimensions, rows, columns)
	}

	return &Board{
		rows:      rows,
		columns:   columns,
		winLength: winLength,
		cells:     make([]CellState, rows*columns),
	}, nil
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Columns() int {
	return that.columns
}

func (that *Board) WinLength() int {
	return that.winLength
}

// index panics on out-of-range coordinates; there is no sensible way to continue.
func (that *Board) index(row, column int) int {
	if row < 0 || row >= that.rows {
		panic(fmt.Errorf("%w: the row count is %d but the row accessed is %d",
			apperror.ErrOutOfBounds, that.rows, row))
	}

	if column < 0 || column >= that.columns {
		panic(fmt.Errorf("%w: the column count is %d but the column accessed is %d",
			apperror.ErrOutOfBounds, that.columns, column))
	}

	return row*that.columns + column
}

// InBounds reports whether (row, column) addresses a cell of the board.
func (that *Board) InBounds(row, column int) bool {
	return row >= 0 && row < that.rows && column >= 0 && column < that.columns
}

func (that *Board) Get(row, column int) CellState {
	return that.cells[that.index(row, column)]
}

// TrySet occupies an empty cell for participant and reports whether it did.
// An occupied cell is left untouched.
func (that *Board) TrySet(row, column int, participant ParticipantID) bool {
	i := that.index(row, column)
	if !that.cells[i].IsEmpty() {
		return false
	}

	that.cells[i] = OccupiedBy(participant)
	return true
}

// CellsWithState lists the coordinates holding state, row by row, columns ascending.
func (that *Board) CellsWithState(state CellState) []Position {
	var positions []Position
	for row := 0; row < that.rows; row++ {
		for column := 0; column < that.columns; column++ {
			if that.cells[row*that.columns+column] == state {
				positions = append(positions, Position{Row: row, Column: column})
			}
		}
	}
	return positions
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell.IsEmpty() {
			return false
		}
	}
	return true
}

// Duplicate returns a deep copy sharing nothing with the original.
func (that *Board) Duplicate() *Board {
	cells := make([]CellState, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		rows:      that.rows,
		columns:   that.columns,
		winLength: that.winLength,
		cells:     cells,
	}
}

type boardJSON struct {
	Rows      int         `json:"rows"`
	Columns   int         `json:"columns"`
	WinLength int         `json:"win_length"`
	Cells     []CellState `json:"cells"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Rows:      that.rows,
		Columns:   that.columns,
		WinLength: that.winLength,
		Cells:     that.cells,
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := NewBoard(raw.Rows, raw.Columns, raw.WinLength)
	if err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(raw.Cells) != len(board.cells) {
		return fmt.Errorf("failed to unmarshal board: %d cells for a %dx%d board",
			len(raw.Cells), raw.Rows, raw.Columns)
	}

	copy(board.cells, raw.Cells)
	*that = *board

	return nil
}
