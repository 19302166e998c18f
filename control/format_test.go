package control

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 65, want: "1:05"},
		{in: 5, want: "0:05"},
		{in: 0, want: "0:00"},
		{in: 59.99, want: "0:59"},
		{in: 600, want: "10:00"},
		{in: 3725, want: "62:05"},
		{in: -3, want: "0:00"},
		{in: math.NaN(), want: "0:00"},
		{in: math.Inf(1), want: "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.in), "FormatTime(%v)", tt.in)
	}
}
