package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_SingleToken(t *testing.T) {
	p := NewParser("")

	tests := []struct {
		name    string
		raw     string
		vals    []float64
		garbage int
	}{
		{"plain float", "23.40", []float64{23.40}, 0},
		{"integer", "25", []float64{25}, 0},
		{"negative", "-3.5", []float64{-3.5}, 0},
		{"scientific notation", "2.5e1", []float64{25}, 0},
		{"leading whitespace", "  23.40\t", []float64{23.40}, 0},
		{"blank line", "", nil, 0},
		{"whitespace only", "   ", nil, 0},
		{"garbage word", "hello", nil, 1},
		{"number with trailing junk", "23.4C", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, garbage := p.Values(tt.raw)
			assert.Equal(t, tt.vals, vals)
			assert.Equal(t, tt.garbage, garbage)
		})
	}
}

func TestValues_Delimited(t *testing.T) {
	p := NewParser("!")

	tests := []struct {
		name    string
		raw     string
		vals    []float64
		garbage int
	}{
		{"wrapped value", "!23.5!", []float64{23.5}, 0},
		{"several values", "!23.5!24.0!", []float64{23.5, 24.0}, 0},
		{"bare value still parses", "23.5", []float64{23.5}, 0},
		{"mixed good and bad", "!23.5!junk!24.0!", []float64{23.5, 24.0}, 1},
		{"only delimiters", "!!!", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, garbage := p.Values(tt.raw)
			assert.Equal(t, tt.vals, vals)
			assert.Equal(t, tt.garbage, garbage)
		})
	}
}

func TestValues_InvalidUTF8IsGarbageNotError(t *testing.T) {
	p := NewParser("")
	vals, garbage := p.Values("\xff\xfe23.4")
	assert.Nil(t, vals)
	assert.Equal(t, 1, garbage)
}
