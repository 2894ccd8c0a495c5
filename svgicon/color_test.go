package svgicon

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	for input, expected := range map[string]color.Color{
		"none":                       nil,
		"":                           nil,
		"transparent":                color.NRGBA{},
		"red":                        color.NRGBA{0xff, 0, 0, 0xff},
		" Navy ":                     color.NRGBA{0, 0, 0x80, 0xff},
		"#0f0":                       color.NRGBA{0, 0xff, 0, 0xff},
		"#102030":                    color.NRGBA{0x10, 0x20, 0x30, 0xff},
		"rgb(1, 2, 3)":               color.NRGBA{1, 2, 3, 0xff},
		"rgb(100%, 0%, 300)":         color.NRGBA{0xff, 0, 0xff, 0xff},
		"rgba(1, 2, 3, 0.5)":         color.NRGBA{1, 2, 3, 0x80},
		"rgb(1 2 3 / 50%)":           color.NRGBA{1, 2, 3, 0x80},
		"hsl(0, 100%, 50%)":          color.NRGBA{0xff, 0, 0, 0xff},
		"hsla(240deg, 100%, 50%, 1)": color.NRGBA{0, 0, 0xff, 0xff},
	} {
		got, err := ParseColor(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, input := range []string{
		"#12", "#ggg", "rgb(1, 2)", "rgb(a, 2, 3)", "cmyk(1, 2, 3, 4)", "hsl(1, 2)", "notacolor", "rgb(1, 2, 3",
	} {
		_, err := ParseColor(input)
		assert.Error(t, err, input)
	}
}

func TestPlainColor(t *testing.T) {
	assert.Equal(t, "#0a0b0c", NewPlainColor(10, 11, 12, 0xff).String())
	assert.Nil(t, asPattern(nil))
	assert.Equal(t, NewPlainColor(0xff, 0, 0, 0xff), asPattern(color.RGBA{0xff, 0, 0, 0xff}))
}
