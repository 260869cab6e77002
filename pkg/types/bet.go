package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prediction is the outcome a bet is placed on, in 1X2 notation.
type Prediction string

// Valid predictions.
const (
	PredictionHomeWin Prediction = "1"
	PredictionDraw    Prediction = "X"
	PredictionAwayWin Prediction = "2"
)

// Predictions lists every valid Prediction.
var Predictions = []Prediction{PredictionHomeWin, PredictionDraw, PredictionAwayWin}

// Valid reports whether p is one of the 1X2 outcomes.
func (p Prediction) Valid() bool {
	switch p {
	case PredictionHomeWin, PredictionDraw, PredictionAwayWin:
		return true
	}
	return false
}

// Bet is a stake placed by a User on a Game.
type Bet struct {
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Prediction Prediction      `json:"prediction"`
	DateTime   time.Time       `json:"date_time"`
	GameID     int64           `json:"game_id"`
	UserID     int64           `json:"user_id"`
}
