package svgpath

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// ParseError reports a malformed path data string.
type ParseError struct {
	Pos int // byte offset in the input
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid path data at offset %d: %s", e.Pos, e.Msg)
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// pathParser reads path data into absolute directives.
type pathParser struct {
	data []byte
	pos  int

	out        []Directive
	cur, start Point // current point and start of the sub-path
	ctrl       Point // last control point, for the S and T shorthands
}

func (p *pathParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *pathParser) num() (float64, error) {
	p.pos += skipCommaWhitespace(p.data[p.pos:])
	f, n := strconv.ParseFloat(p.data[p.pos:])
	if n == 0 {
		return 0, p.errorf("expected number")
	}
	p.pos += n
	return f, nil
}

// nums reads len(dst) numbers
func (p *pathParser) nums(dst []float64) error {
	for i := range dst {
		var err error
		if dst[i], err = p.num(); err != nil {
			return err
		}
	}
	return nil
}

// flag reads an arc flag, which may be written without separator
func (p *pathParser) flag() (bool, error) {
	p.pos += skipCommaWhitespace(p.data[p.pos:])
	if p.pos >= len(p.data) {
		return false, p.errorf("expected flag")
	}
	switch p.data[p.pos] {
	case '0':
		p.pos++
		return false, nil
	case '1':
		p.pos++
		return true, nil
	}
	return false, p.errorf("invalid flag %q", p.data[p.pos])
}

// hasNumber returns true if a number follows, meaning
// the previous command is implicitly repeated.
func (p *pathParser) hasNumber() bool {
	i := p.pos + skipCommaWhitespace(p.data[p.pos:])
	if i >= len(p.data) {
		return false
	}
	c := p.data[i]
	return c == '-' || c == '+' || c == '.' || ('0' <= c && c <= '9')
}

func (p *pathParser) rel(relative bool, q Point) Point {
	if relative {
		return q.Add(p.cur)
	}
	return q
}

// ParseData parses a SVG path data string (the `d` attribute).
// Relative commands and shorthands (H, V, S, Q, T) are resolved,
// so that the returned directives only use absolute
// MoveTo, LineTo, CurveTo, ArcTo and End. Quadratic curves are
// elevated to cubic ones.
func ParseData(d string) ([]Directive, error) {
	p := &pathParser{data: []byte(d)}
	var prevCmd byte
	var args [7]float64
	for {
		p.pos += skipCommaWhitespace(p.data[p.pos:])
		if p.pos >= len(p.data) {
			break
		}
		cmd := p.data[p.pos]
		if 'A' <= cmd && cmd <= 'z' {
			p.pos++
		} else {
			// implicit repetition of the previous command
			if prevCmd == 0 || prevCmd == 'Z' || prevCmd == 'z' {
				return nil, p.errorf("expected command, got %q", cmd)
			}
			cmd = prevCmd
		}
		relative := 'a' <= cmd && cmd <= 'z'
		switch cmd {
		case 'M', 'm':
			if err := p.nums(args[:2]); err != nil {
				return nil, err
			}
			p.cur = p.rel(relative, Point{args[0], args[1]})
			p.start = p.cur
			p.out = append(p.out, MoveTo(p.cur))
			// following pairs are line commands
			if relative {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z', 'z':
			p.out = append(p.out, E())
			p.cur = p.start
		case 'L', 'l':
			if err := p.nums(args[:2]); err != nil {
				return nil, err
			}
			p.cur = p.rel(relative, Point{args[0], args[1]})
			p.out = append(p.out, LineTo(p.cur))
		case 'H', 'h':
			x, err := p.num()
			if err != nil {
				return nil, err
			}
			if relative {
				x += p.cur.X
			}
			p.cur.X = x
			p.out = append(p.out, LineTo(p.cur))
		case 'V', 'v':
			y, err := p.num()
			if err != nil {
				return nil, err
			}
			if relative {
				y += p.cur.Y
			}
			p.cur.Y = y
			p.out = append(p.out, LineTo(p.cur))
		case 'C', 'c':
			if err := p.nums(args[:6]); err != nil {
				return nil, err
			}
			op := CurveTo{
				C1: p.rel(relative, Point{args[0], args[1]}),
				C2: p.rel(relative, Point{args[2], args[3]}),
				To: p.rel(relative, Point{args[4], args[5]}),
			}
			p.out = append(p.out, op)
			p.cur, p.ctrl = op.To, op.C2
		case 'S', 's':
			if err := p.nums(args[:4]); err != nil {
				return nil, err
			}
			c1 := p.cur
			switch prevCmd {
			case 'C', 'c', 'S', 's':
				c1 = p.cur.Scale(2).Sub(p.ctrl)
			}
			op := CurveTo{
				C1: c1,
				C2: p.rel(relative, Point{args[0], args[1]}),
				To: p.rel(relative, Point{args[2], args[3]}),
			}
			p.out = append(p.out, op)
			p.cur, p.ctrl = op.To, op.C2
		case 'Q', 'q':
			if err := p.nums(args[:4]); err != nil {
				return nil, err
			}
			ctrl := p.rel(relative, Point{args[0], args[1]})
			to := p.rel(relative, Point{args[2], args[3]})
			p.out = append(p.out, quadToCubic(p.cur, ctrl, to))
			p.cur, p.ctrl = to, ctrl
		case 'T', 't':
			if err := p.nums(args[:2]); err != nil {
				return nil, err
			}
			ctrl := p.cur
			switch prevCmd {
			case 'Q', 'q', 'T', 't':
				ctrl = p.cur.Scale(2).Sub(p.ctrl)
			}
			to := p.rel(relative, Point{args[0], args[1]})
			p.out = append(p.out, quadToCubic(p.cur, ctrl, to))
			p.cur, p.ctrl = to, ctrl
		case 'A', 'a':
			if err := p.nums(args[:3]); err != nil {
				return nil, err
			}
			large, err := p.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := p.flag()
			if err != nil {
				return nil, err
			}
			if err := p.nums(args[3:5]); err != nil {
				return nil, err
			}
			to := p.rel(relative, Point{args[3], args[4]})
			p.out = append(p.out, ArcTo{RX: args[0], RY: args[1], Rotation: args[2], LargeArc: large, Sweep: sweep, To: to})
			p.cur = to
		default:
			return nil, p.errorf("unsupported command %q", cmd)
		}
		prevCmd = cmd
		if (cmd == 'Z' || cmd == 'z') && p.hasNumber() {
			return nil, p.errorf("unexpected number after close command")
		}
	}
	return p.out, nil
}

// quadToCubic elevates the quadratic curve (from, ctrl, to)
func quadToCubic(from, ctrl, to Point) CurveTo {
	return CurveTo{
		C1: from.Add(ctrl.Sub(from).Scale(2. / 3)),
		C2: to.Add(ctrl.Sub(to).Scale(2. / 3)),
		To: to,
	}
}
