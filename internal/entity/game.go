package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/inarow/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const (
	ResultWin  = "win"
	ResultDraw = "draw"
)

// Move is one applied placement.
type Move struct {
	Participant ParticipantID `json:"participant"`
	Row         int           `json:"row"`
	Column      int           `json:"column"`
}

// Game is the persisted record of one match.
type Game struct {
	ID           string          `json:"id"`
	Board        *Board          `json:"board"`
	Participants []ParticipantID `json:"participants"`
	Turn         int             `json:"turn"`
	Status       string          `json:"status"`
	Winner       *ParticipantID  `json:"winner,omitempty"`
	Moves        []Move          `json:"moves,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}

func NewGame(id string, board *Board, participants []ParticipantID) *Game {
	return &Game{
		ID:           id,
		Board:        board,
		Participants: participants,
		Status:       StatusOngoing,
		StartedAt:    time.Now().UTC(),
	}
}

// CurrentParticipant is the participant whose turn it is.
func (that *Game) CurrentParticipant() ParticipantID {
	return that.Participants[that.Turn]
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// RecordMove appends a move and passes the turn to the next participant.
func (that *Game) RecordMove(move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	that.Moves = append(that.Moves, move)
	that.Turn = (that.Turn + 1) % len(that.Participants)

	return nil
}

// UpdateGameState mirrors outcome into Status and Winner.
func (that *Game) UpdateGameState(outcome GameOutcome) {
	switch outcome.Kind() {
	// one participant wins
	case OutcomeWin:
		winner, _ := outcome.Winner()
		that.Winner = &winner
		that.finish()
	// draw
	case OutcomeDraw:
		that.Winner = nil
		that.finish()
	// game continues
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) finish() {
	now := time.Now().UTC()
	that.Status = StatusFinished
	that.FinishedAt = &now
}

// Result summarises a finished game for the history store.
func (that *Game) Result() (*Result, error) {
	if !that.IsFinished() || that.FinishedAt == nil {
		return nil, fmt.Errorf("game %s: %w", that.ID, apperror.ErrGameNotFinished)
	}

	outcome := ResultDraw
	if that.Winner != nil {
		outcome = ResultWin
	}

	return &Result{
		GameID:     that.ID,
		Outcome:    outcome,
		Winner:     that.Winner,
		Moves:      len(that.Moves),
		Rows:       that.Board.Rows(),
		Columns:    that.Board.Columns(),
		WinLength:  that.Board.WinLength(),
		FinishedAt: *that.FinishedAt,
	}, nil
}

type Result struct {
	GameID     string
	Outcome    string
	Winner     *ParticipantID
	Moves      int
	Rows       int
	Columns    int
	WinLength  int
	FinishedAt time.Time
}
