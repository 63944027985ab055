package script

import "strings"

// Statement keywords.
const (
	KeywordVar        = "var"
	KeywordShape      = "shape"
	KeywordDefine     = "define"
	KeywordLight      = "light"
	KeywordBackground = "background"
	KeywordShadows    = "shadows"
	KeywordPhysics    = "physics"
	KeywordPenUp      = "penup"
	KeywordPenDown    = "pendown"
	KeywordPenShape   = "penshape"
	KeywordPenColor   = "pencolor"
	KeywordPenWidth   = "penwidth"
	KeywordPenHeight  = "penheight"
	KeywordForward    = "forward"
	KeywordUp         = "up"
	KeywordTurn       = "turn"
	KeywordHeading    = "heading"
	KeywordMoveTo     = "moveto"
)

// Keywords returns every statement keyword.
func Keywords() []string {
	return []string{
		KeywordVar, KeywordShape, KeywordDefine, KeywordLight,
		KeywordBackground, KeywordShadows, KeywordPhysics,
		KeywordPenUp, KeywordPenDown, KeywordPenShape, KeywordPenColor,
		KeywordPenWidth, KeywordPenHeight, KeywordForward, KeywordUp,
		KeywordTurn, KeywordHeading, KeywordMoveTo,
	}
}

// RawKind classifies the source form of a value.
type RawKind int

const (
	RawText   RawKind = iota // expression or bare word
	RawString                // quoted string, unquoted in Text
	RawVector                // [x, y, z], expressions in Elems
	RawColor                 // #rrggbb, in Text
)

// Raw is an uncoerced value as written in the script.
type Raw struct {
	Kind  RawKind
	Text  string
	Elems []string
	Pos   Position
}

// String returns the value as it would be written in a script.
func (r Raw) String() string {
	switch r.Kind {
	case RawString:
		return `"` + r.Text + `"`
	case RawVector:
		return "[" + strings.Join(r.Elems, ", ") + "]"
	default:
		return r.Text
	}
}

// Param is one "key: value" entry of a block.
type Param struct {
	Key   string
	Value Raw
	Pos   Position
}

// Command is one statement of a script.
type Command struct {
	Keyword string
	Name    string  // entity or variable name
	Parent  string  // template of a shape or define
	Params  []Param // block entries
	Arg     *Raw    // variable expression or turtle argument
	Pos     Position
}
