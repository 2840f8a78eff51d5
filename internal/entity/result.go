package entity

import "time"

// Result is the summary of a finished game kept in the result ledger.
type Result struct {
	GameID     string    `json:"game_id"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	K          int       `json:"k"`
	Status     string    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// Tally counts finished games by result.
type Tally struct {
	WinsX int `json:"wins_x"`
	WinsO int `json:"wins_o"`
	Draws int `json:"draws"`
}

func (that Tally) Total() int {
	return that.WinsX + that.WinsO + that.Draws
}
