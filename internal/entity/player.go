package entity

const (
	KindHuman = "human"
	KindBot   = "bot"
)

// Player is a configured participant and how its moves are produced.
type Player struct {
	ID   ParticipantID
	Kind string
}
