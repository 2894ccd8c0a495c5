package svgpath

// Symbol is a path command letter, shared by the
// directives and the path data parser.
type Symbol byte

// Path command symbols. Lower case symbols are the relative
// variants; directives always use the absolute ones.
const (
	SymMoveTo     Symbol = 'M'
	SymMoveToRel  Symbol = 'm'
	SymLineTo     Symbol = 'L'
	SymLineToRel  Symbol = 'l'
	SymCurveTo    Symbol = 'C'
	SymCurveToRel Symbol = 'c'
	SymArcTo      Symbol = 'A'
	SymArcToRel   Symbol = 'a'
	SymEnd        Symbol = 'Z'
)

// String returns the command letter.
func (s Symbol) String() string { return string(rune(s)) }

// Name returns a human readable name.
func (s Symbol) Name() string {
	switch s {
	case SymMoveTo:
		return "MoveTo"
	case SymMoveToRel:
		return "MoveToRel"
	case SymLineTo:
		return "LineTo"
	case SymLineToRel:
		return "LineToRel"
	case SymCurveTo:
		return "CurveTo"
	case SymCurveToRel:
		return "CurveToRel"
	case SymArcTo:
		return "ArcTo"
	case SymArcToRel:
		return "ArcToRel"
	case SymEnd:
		return "End"
	default:
		return "<unknown Symbol>"
	}
}

// IsRelative returns true for the lower case variants.
func (s Symbol) IsRelative() bool { return 'a' <= s && s <= 'z' }

// Absolute returns the upper case variant of s.
func (s Symbol) Absolute() Symbol {
	if s.IsRelative() {
		return s - 'a' + 'A'
	}
	return s
}
