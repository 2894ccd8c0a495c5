// Package scene reads drawings described in YAML or TOML files,
// and assembles them with svgdraw.
//
// A scene is a list of drawings. Each drawing declares named
// resources (gradients, clip paths, images), the attributes of
// the root element, and paths given by their SVG path data, optionally
// transformed by modifiers.
// An attribute value starting with `$` references a resource:
// `fill: $gradient` is rendered as `fill="url(#gradient-<id>)"`.
package scene

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgdraw"
	"github.com/benoitkugler/svgcompose/svgpath"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a scene file.
type Format uint8

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("<format %d>", f)
	}
}

// FormatFromPath returns the format matching the extension of `path`.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
	}
}

// Def types
const (
	LinearGradientDef = "linear-gradient"
	ClipPathDef       = "clip-path"
	ImageDef          = "image"
)

// Modifier types
const (
	NoOpModifier        = "noop"
	MirrorXModifier     = "mirror-x"
	MirrorYModifier     = "mirror-y"
	MirrorAngleModifier = "mirror-angle"
	MirrorCustomMod     = "mirror-custom"
	ArrayModifier       = "array"
	ArrayAngleModifier  = "array-angle"
	CopyAndModifier     = "copy-and"
	BevelModifier       = "bevel"
)

// Scene is the content of a scene file.
type Scene struct {
	Drawings []Drawing `yaml:"drawings" toml:"drawings"`
}

// Drawing describes one SVG document.
type Drawing struct {
	// Name prefixes the drawing id. Default to drawing<index>.
	Name       string            `yaml:"name" toml:"name"`
	Attributes map[string]string `yaml:"attributes" toml:"attributes"`
	Defs       map[string]Def    `yaml:"defs" toml:"defs"`
	Paths      []PathSpec        `yaml:"paths" toml:"paths"`
}

// Def is a resource of a drawing. Only the fields relevant
// to its Type are used.
type Def struct {
	Type string `yaml:"type" toml:"type"`

	// linear-gradient: a list of colors, each one optionally followed
	// by an offset like `25%`
	Stops []string `yaml:"stops" toml:"stops"`
	// linear-gradient: angle in degrees, or direction vector
	Angle  *float64    `yaml:"angle" toml:"angle"`
	Vector *[2]float64 `yaml:"vector" toml:"vector"`

	// clip-path
	Path *PathSpec `yaml:"path" toml:"path"`

	// image
	Href string `yaml:"href" toml:"href"`

	Attributes map[string]string `yaml:"attributes" toml:"attributes"`
}

// PathSpec describes a path of a drawing.
type PathSpec struct {
	Name string `yaml:"name" toml:"name"`
	// D is either a path data string or a list of
	// path data strings, concatenated.
	D          any               `yaml:"d" toml:"d"`
	Modifiers  []ModifierSpec    `yaml:"modifiers" toml:"modifiers"`
	Attributes map[string]string `yaml:"attributes" toml:"attributes"`
}

// ModifierSpec describes one modifier. Only the fields relevant
// to its Type are used. Angles are always in degrees.
type ModifierSpec struct {
	Type      string        `yaml:"type" toml:"type"`
	Angle     float64       `yaml:"angle" toml:"angle"`
	Offset    [2]float64    `yaml:"offset" toml:"offset"`
	Direction [2]float64    `yaml:"direction" toml:"direction"`
	Spacing   float64       `yaml:"spacing" toml:"spacing"`
	Count     int           `yaml:"count" toml:"count"`
	Inner     *ModifierSpec `yaml:"inner" toml:"inner"`
}

// Load reads the scene file at `path`, whose format is deduced
// from its extension.
func Load(path string) (Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Scene{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, err
	}
	defer f.Close()

	sc, err := Decode(f, format)
	if err != nil {
		return Scene{}, fmt.Errorf("reading scene %s: %w", path, err)
	}
	return sc, nil
}

// Decode reads a scene. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (Scene, error) {
	var sc Scene
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			if errors.Is(err, io.EOF) {
				return sc, errors.New("empty scene")
			}
			return sc, fmt.Errorf("invalid YAML scene: %w", err)
		}
	case TOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&sc); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return sc, fmt.Errorf("invalid TOML scene: %s", strict.String())
			}
			return sc, fmt.Errorf("invalid TOML scene: %w", err)
		}
	default:
		return sc, fmt.Errorf("unsupported scene format %s", format)
	}
	if len(sc.Drawings) == 0 {
		return sc, errors.New("scene has no drawing")
	}
	return sc, nil
}

// Build assembles every drawing of the scene, using `ids` to
// generate the drawing identifiers (svgdraw.DefaultIDs if nil).
func (sc Scene) Build(ids svgdraw.IDGenerator) ([]*svgdraw.Drawing, error) {
	if ids == nil {
		ids = svgdraw.DefaultIDs
	}
	seen := map[string]bool{}
	out := make([]*svgdraw.Drawing, 0, len(sc.Drawings))
	for i, d := range sc.Drawings {
		name := d.Name
		if name == "" {
			name = "drawing" + strconv.Itoa(i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate drawing name %s", name)
		}
		seen[name] = true

		dr, err := d.build(name, ids)
		if err != nil {
			return nil, fmt.Errorf("drawing %s: %w", name, err)
		}
		out = append(out, dr)
	}
	return out, nil
}

func (d Drawing) build(name string, ids svgdraw.IDGenerator) (*svgdraw.Drawing, error) {
	defs := make(map[string]svgdraw.Resource, len(d.Defs))
	for key, def := range d.Defs {
		res, err := def.resource()
		if err != nil {
			return nil, fmt.Errorf("def %s: %w", key, err)
		}
		defs[key] = res
	}

	canvas := svgdraw.New(name, svgdraw.Options{
		Defs:       defs,
		Attributes: attributes(d.Attributes),
		IDs:        ids,
	})

	args := make([]svgdraw.Arg, 0, 2*len(d.Paths))
	for i, ps := range d.Paths {
		dirs, opts, err := ps.arguments()
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		args = append(args, dirs, opts)
	}
	return canvas.Draw(args...)
}

func (def Def) resource() (svgdraw.Resource, error) {
	switch def.Type {
	case LinearGradientDef:
		if def.Angle != nil && def.Vector != nil {
			return nil, errors.New("angle and vector are exclusive")
		}
		opts := svgdraw.GradientOptions{Attributes: attributes(def.Attributes)}
		if def.Angle != nil {
			opts.Direction = svgdraw.Degrees(*def.Angle)
		} else if def.Vector != nil {
			opts.Direction = svgdraw.Vector{X: def.Vector[0], Y: def.Vector[1]}
		}
		return svgdraw.NewLinearGradient(stopArgs(def.Stops)...).Options(opts), nil
	case ClipPathDef:
		if def.Path == nil {
			return nil, errors.New("missing clip path")
		}
		dirs, opts, err := def.Path.arguments()
		if err != nil {
			return nil, err
		}
		return svgdraw.NewClipPath(dirs, opts), nil
	case ImageDef:
		if def.Href == "" {
			return nil, errors.New("missing image href")
		}
		return svgdraw.NewImage(def.Href).WithAttributes(attributes(def.Attributes)), nil
	default:
		return nil, fmt.Errorf("unknown def type %q", def.Type)
	}
}

// stopArgs converts each entry to a Percent if it is a number,
// optionally suffixed by %, or to a Color otherwise.
func stopArgs(stops []string) []svgdraw.StopArg {
	out := make([]svgdraw.StopArg, len(stops))
	for i, s := range stops {
		s = strings.TrimSpace(s)
		if v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64); err == nil {
			out[i] = svgdraw.Percent(v)
		} else {
			out[i] = svgdraw.Color(s)
		}
	}
	return out
}

// attributes converts raw values, turning `$name` into a reference.
func attributes(raw map[string]string) svgdraw.Attributes {
	if len(raw) == 0 {
		return nil
	}
	out := make(svgdraw.Attributes, len(raw))
	for k, v := range raw {
		if name, ok := strings.CutPrefix(v, "$"); ok && name != "" {
			out[k] = svgdraw.RefName(name)
		} else {
			out[k] = svgdraw.Text(v)
		}
	}
	return out
}

func (ps PathSpec) data() (string, error) {
	switch d := ps.D.(type) {
	case nil:
		return "", errors.New("missing path data")
	case string:
		return d, nil
	case []any:
		chunks := make([]string, len(d))
		for i, c := range d {
			s, ok := c.(string)
			if !ok {
				return "", fmt.Errorf("invalid path data item %v (%T)", c, c)
			}
			chunks[i] = s
		}
		return strings.Join(chunks, " "), nil
	default:
		return "", fmt.Errorf("invalid path data %v (%T)", d, d)
	}
}

func (ps PathSpec) arguments() (svgdraw.Directives, svgdraw.PathOptions, error) {
	data, err := ps.data()
	if err != nil {
		return nil, svgdraw.PathOptions{}, err
	}
	dirs, err := svgpath.ParseData(data)
	if err != nil {
		return nil, svgdraw.PathOptions{}, err
	}
	mods := make([]svgpath.Modifier, len(ps.Modifiers))
	for i, ms := range ps.Modifiers {
		mods[i], err = ms.modifier()
		if err != nil {
			return nil, svgdraw.PathOptions{}, fmt.Errorf("modifier %d: %w", i, err)
		}
	}
	opts := svgdraw.PathOptions{Name: ps.Name, Modifiers: mods}
	if attrs := attributes(ps.Attributes); attrs != nil {
		opts.Attributes = svgdraw.Static(attrs)
	}
	return svgdraw.Dirs(dirs...), opts, nil
}

func radians(degrees float64) float64 { return degrees * math.Pi / 180 }

func (ms ModifierSpec) modifier() (svgpath.Modifier, error) {
	switch ms.Type {
	case NoOpModifier:
		return svgpath.NoOp(), nil
	case MirrorXModifier:
		return svgpath.MirrorX(), nil
	case MirrorYModifier:
		return svgpath.MirrorY(), nil
	case MirrorAngleModifier:
		return svgpath.MirrorAngle(radians(ms.Angle)), nil
	case MirrorCustomMod:
		return svgpath.MirrorCustom(svgpath.Point{X: ms.Offset[0], Y: ms.Offset[1]}, radians(ms.Angle)), nil
	case ArrayModifier, ArrayAngleModifier:
		if ms.Count < 0 {
			return nil, fmt.Errorf("negative array count %d", ms.Count)
		}
		if ms.Type == ArrayAngleModifier {
			return svgpath.ArrayAngle(ms.Angle, ms.Spacing, ms.Count), nil
		}
		return svgpath.Array(svgpath.Point{X: ms.Direction[0], Y: ms.Direction[1]}, ms.Spacing, ms.Count), nil
	case CopyAndModifier:
		if ms.Inner == nil {
			return nil, errors.New("copy-and requires an inner modifier")
		}
		inner, err := ms.Inner.modifier()
		if err != nil {
			return nil, err
		}
		return svgpath.CopyAnd(inner), nil
	case BevelModifier:
		return svgpath.Bevel(), nil
	default:
		logx.Logger().Debug("scene: unknown modifier", "type", ms.Type)
		return nil, fmt.Errorf("unknown modifier type %q", ms.Type)
	}
}
