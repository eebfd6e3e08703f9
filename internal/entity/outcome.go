package entity

import "fmt"

type OutcomeKind int

const (
	OutcomeInProgress OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

// GameOutcome is a verdict about one board snapshot. The zero value is InProgress.
type GameOutcome struct {
	kind   OutcomeKind
	winner ParticipantID
}

func Win(participant ParticipantID) GameOutcome {
	return GameOutcome{kind: OutcomeWin, winner: participant}
}

func Draw() GameOutcome {
	return GameOutcome{kind: OutcomeDraw}
}

func InProgress() GameOutcome {
	return GameOutcome{kind: OutcomeInProgress}
}

func (that GameOutcome) Kind() OutcomeKind {
	return that.kind
}

// Winner returns the winning participant, false unless the outcome is a win.
func (that GameOutcome) Winner() (ParticipantID, bool) {
	if that.kind != OutcomeWin {
		return 0, false
	}
	return that.winner, true
}

func (that GameOutcome) IsTerminal() bool {
	return that.kind != OutcomeInProgress
}

func (that GameOutcome) String() string {
	switch that.kind {
	case OutcomeWin:
		return fmt.Sprintf("win(%d)", that.winner)
	case OutcomeDraw:
		return "draw"
	default:
		return "in progress"
	}
}
