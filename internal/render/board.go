// Package render draws boards for the terminal.
package render

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

// palette holds ANSI colour indices handed out to participants by id.
var palette = []string{"1", "4", "2", "3", "5", "6"}

type Renderer struct {
	output *termenv.Output
}

func New(output *termenv.Output) *Renderer {
	return &Renderer{output: output}
}

// Render draws one line per row, e.g. "|_|1|2|".
func (that *Renderer) Render(board *entity.Board) string {
	var sb strings.Builder
	for row := 0; row < board.Rows(); row++ {
		for column := 0; column < board.Columns(); column++ {
			sb.WriteString("|")
			sb.WriteString(that.cell(board.Get(row, column)))
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

func (that *Renderer) cell(state entity.CellState) string {
	participant, occupied := state.Occupant()
	if !occupied {
		return that.output.String(state.String()).Faint().String()
	}

	i := int(participant) % len(palette)
	if i < 0 {
		i += len(palette)
	}

	return that.output.String(state.String()).Foreground(that.output.Color(palette[i])).Bold().String()
}
