package svgpath

import (
	"github.com/benoitkugler/svgcompose/internal/logx"
)

// Modifier transforms a directive sequence into a new one.
// Modifiers never mutate their input.
type Modifier func(dirs []Directive) ([]Directive, error)

// Apply runs the modifiers from left to right, each stage
// consuming the output of the previous one.
func Apply(dirs []Directive, mods ...Modifier) ([]Directive, error) {
	var err error
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		dirs, err = mod(dirs)
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// appendMapped returns dirs followed by the image of dirs by f
func appendMapped(dirs []Directive, f func(Directive) (Directive, error)) ([]Directive, error) {
	out := make([]Directive, len(dirs), 2*len(dirs))
	copy(out, dirs)
	for _, dir := range dirs {
		m, err := f(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// NoOp returns the identity modifier.
func NoOp() Modifier {
	return func(dirs []Directive) ([]Directive, error) { return dirs, nil }
}

// MirrorX returns the directives followed by their
// reflection about the X axis.
func MirrorX() Modifier {
	return func(dirs []Directive) ([]Directive, error) {
		return appendMapped(dirs, func(d Directive) (Directive, error) { return d.MirroredOnX(), nil })
	}
}

// MirrorY returns the directives followed by their
// reflection about the Y axis.
func MirrorY() Modifier {
	return func(dirs []Directive) ([]Directive, error) {
		return appendMapped(dirs, func(d Directive) (Directive, error) { return d.MirroredOnY(), nil })
	}
}

// MirrorAngle is MirrorCustom for an axis going through the origin.
func MirrorAngle(angle float64) Modifier { return MirrorCustom(Point{}, angle) }

// MirrorCustom returns the directives followed by their reflection
// about the line going through `axisOffset` with direction `angle` (radians).
// Curves and arcs are not supported and make the modifier fail
// with ErrNotImplemented.
func MirrorCustom(axisOffset Point, angle float64) Modifier {
	return func(dirs []Directive) ([]Directive, error) {
		return appendMapped(dirs, func(d Directive) (Directive, error) { return d.MirroredCustom(axisOffset, angle) })
	}
}

// Array returns the directives followed by `count` translated copies,
// the i-th copy being shifted by direction * spacing * i (i starting at 1).
// `direction` is used as given: pass a unit vector for `spacing`
// to be a distance.
func Array(direction Point, spacing float64, count int) Modifier {
	return func(dirs []Directive) ([]Directive, error) {
		if count < 0 {
			count = 0
		}
		out := make([]Directive, len(dirs), len(dirs)*(count+1))
		copy(out, dirs)
		for i := 1; i <= count; i++ {
			offset := direction.Scale(spacing * float64(i))
			for _, dir := range dirs {
				out = append(out, dir.Offset(offset))
			}
		}
		return out, nil
	}
}

// ArrayAngle is the same as Array, with a direction
// given as an angle in degrees.
func ArrayAngle(degrees, spacing float64, count int) Modifier {
	return Array(FromAngle(degrees), spacing, count)
}

// CopyAnd returns the directives followed by the output
// of `inner`, turning any transform into an additive one.
func CopyAnd(inner Modifier) Modifier {
	return func(dirs []Directive) ([]Directive, error) {
		added, err := inner(dirs)
		if err != nil {
			return nil, err
		}
		out := make([]Directive, 0, len(dirs)+len(added))
		out = append(out, dirs...)
		return append(out, added...), nil
	}
}

// Bevel is reserved for corner beveling, which is not implemented:
// the directives are returned unchanged.
func Bevel() Modifier {
	return func(dirs []Directive) ([]Directive, error) {
		logx.Logger().Warn("svgpath: bevel modifier is not implemented, directives left unchanged",
			"directives", len(dirs))
		return dirs, nil
	}
}
