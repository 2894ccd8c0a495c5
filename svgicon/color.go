package svgicon

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: named colors, `#rgb`, `#rrggbb`,
// `rgb()`, `rgba()`, `hsl()` and `hsla()`.
// `none` returns a nil color, meaning no paint.
func ParseColor(v string) (color.Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "", "none":
		return nil, nil
	case "transparent":
		return color.NRGBA{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v)
	}
	name, args, ok := splitFunction(v)
	if !ok {
		return nil, fmt.Errorf("invalid color %q", v)
	}
	switch name {
	case "rgb", "rgba":
		return parseRGB(args)
	case "hsl", "hsla":
		return parseHSL(args)
	}
	return nil, fmt.Errorf("unsupported color function %q", name)
}

func parseHexColor(v string) (color.Color, error) {
	hex := v[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", v)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 0xff}, nil
}

// splitFunction splits `name(a, b, c)`
func splitFunction(v string) (name string, args []string, ok bool) {
	name, rest, ok := strings.Cut(v, "(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return "", nil, false
	}
	rest = strings.TrimSuffix(rest, ")")
	return strings.TrimSpace(name), splitOnCommaOrSpace(strings.ReplaceAll(rest, "/", " ")), true
}

// parseAlpha reads an optional alpha component, either
// a number in [0, 1] or a percentage.
func parseAlpha(args []string, index int) (uint8, error) {
	if len(args) <= index {
		return 0xff, nil
	}
	a, err := readFraction(args[index])
	if err != nil {
		return 0, err
	}
	return uint8(clamp01(a)*0xff + 0.5), nil
}

func parseRGB(args []string) (color.Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, errParamMismatch
	}
	var vals [3]uint8
	for i := range vals {
		arg := args[i]
		var f float64
		var err error
		if strings.HasSuffix(arg, "%") {
			f, err = parseFloat(strings.TrimSuffix(arg, "%"))
			f = f * 0xff / 100
		} else {
			f, err = parseFloat(arg)
		}
		if err != nil {
			return nil, err
		}
		vals[i] = uint8(clamp01(f/0xff)*0xff + 0.5)
	}
	a, err := parseAlpha(args, 3)
	if err != nil {
		return nil, err
	}
	return color.NRGBA{vals[0], vals[1], vals[2], a}, nil
}

func parseHSL(args []string) (color.Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, errParamMismatch
	}
	h, err := parseFloat(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return nil, err
	}
	s, err := readFraction(args[1])
	if err != nil {
		return nil, err
	}
	l, err := readFraction(args[2])
	if err != nil {
		return nil, err
	}
	a, err := parseAlpha(args, 3)
	if err != nil {
		return nil, err
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return color.NRGBA{r, g, b, a}, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}

// formatHex is used for debug output
func formatHex(c color.NRGBA) string {
	return "#" + strconv.FormatUint(uint64(c.R)<<16|uint64(c.G)<<8|uint64(c.B)|1<<24, 16)[1:]
}
