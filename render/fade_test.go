package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFade(t *testing.T) {
	c := color.RGBA{R: 0, G: 255, B: 255, A: 255}
	assert.Equal(t, c, fade(c, 1))
	assert.Equal(t, color.RGBA{}, fade(c, 0))
	assert.Equal(t, color.RGBA{}, fade(c, -1))

	half := fade(c, 0.5)
	assert.Equal(t, uint8(127), half.A)
	assert.LessOrEqual(t, half.G, half.A)
}
