package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictionValid(t *testing.T) {
	for _, p := range Predictions {
		assert.True(t, p.Valid(), "prediction %q", p)
	}
	for _, p := range []Prediction{"", "x", "0", "3", "home"} {
		assert.False(t, p.Valid(), "prediction %q", p)
	}
}
