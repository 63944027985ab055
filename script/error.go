package script

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/worldc/pkg"
	"github.com/ardnew/worldc/scene"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax     = scene.ErrUserScript.Derive("syntax error")
	ErrExpression = scene.ErrUserScript.Derive("invalid expression")
	ErrReadInput  = pkg.NewError("failed to read input")
)

// Position identifies a location in script source.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position formatted as line:column.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// attrs returns the logging attributes of the position.
func (p Position) attrs() []slog.Attr {
	return []slog.Attr{slog.Int("line", p.Line), slog.Int("column", p.Column)}
}

// syntaxError returns an ErrSyntax describing what was expected at pos,
// followed by the offending source line and a caret under the column.
func syntaxError(src []byte, pos Position, expected string) error {
	var b strings.Builder

	b.WriteString("line ")
	b.WriteString(strconv.Itoa(pos.Line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(pos.Column))
	b.WriteString(": expected ")
	b.WriteString(expected)

	lines := strings.Split(string(src), "\n")
	if pos.Line > 0 && pos.Line <= len(lines) {
		num := strconv.Itoa(pos.Line)

		b.WriteString("\n  ")
		b.WriteString(num)
		b.WriteString(" | ")
		b.WriteString(lines[pos.Line-1])
		b.WriteString("\n  ")
		b.WriteString(strings.Repeat(" ", len(num)+3+max(pos.Column-1, 0)))
		b.WriteByte('^')
	}

	return ErrSyntax.
		With(pos.attrs()...).
		With(slog.String("expected", expected)).
		Wrapf("%s", b.String())
}
