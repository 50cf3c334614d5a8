package model

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColor(t *testing.T) {
	s := " #ff0000 "
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"hex string", "#ff00aa", "#FF00AA"},
		{"named", "transparent", "transparent"},
		{"string pointer", &s, "#FF0000"},
		{"color", color.NRGBA{R: 255, G: 128, B: 0, A: 255}, "#FF8000"},
		{"transparent color", color.NRGBA{}, "transparent"},
		{"half transparent color", color.NRGBA{R: 255, A: 128}, "#FF0000"},
		{"premultiplied color", color.RGBA{R: 128, A: 128}, "#FF0000"},
		{"number", 3, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeColor(tt.in))
		})
	}
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#FF8000")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, c)

	c, ok = ParseColor("#0F0")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 0, A: 255}, c)

	c, ok = ParseColor("transparent")
	assert.True(t, ok)
	assert.Equal(t, uint8(0), c.A)

	_, ok = ParseColor("chartreuse")
	assert.False(t, ok)
	_, ok = ParseColor("#12345")
	assert.False(t, ok)
}
