package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ParticipantID identifies one side of a game. Any two distinct values are distinct participants.
type ParticipantID int

func (that ParticipantID) String() string {
	return strconv.Itoa(int(that))
}

// CellState is either empty or occupied by one participant. Values compare with ==.
type CellState struct {
	occupant ParticipantID
	occupied bool
}

func EmptyCell() CellState {
	return CellState{}
}

func OccupiedBy(participant ParticipantID) CellState {
	return CellState{occupant: participant, occupied: true}
}

func (that CellState) IsEmpty() bool {
	return !that.occupied
}

// Occupant returns the participant holding the cell, false for an empty cell.
func (that CellState) Occupant() (ParticipantID, bool) {
	return that.occupant, that.occupied
}

func (that CellState) String() string {
	if !that.occupied {
		return "_"
	}
	return that.occupant.String()
}

// MarshalJSON encodes an empty cell as null and an occupied one as the participant id.
func (that CellState) MarshalJSON() ([]byte, error) {
	if !that.occupied {
		return []byte("null"), nil
	}
	return json.Marshal(int(that.occupant))
}

func (that *CellState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*that = EmptyCell()
		return nil
	}

	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}

	*that = OccupiedBy(ParticipantID(id))
	return nil
}

// Position addresses one cell.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}
