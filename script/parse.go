package script

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/worldc/log"
)

// ParseReader parses the commands of a script read from r.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) ([]Command, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// Parse parses the commands of a script.
func Parse(ctx context.Context, src string, opts ...Option) ([]Command, error) {
	cfg := makeConfig(opts...)

	p := &parser{
		input:  []byte(src),
		line:   1,
		col:    1,
		logger: cfg.logger,
	}

	cmds, err := p.parseScript(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("commands", len(cmds)),
		slog.Int("lines", p.line),
	)

	return cmds, nil
}

// parser holds the parser state.
type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	logger log.Logger
}

// parseScript parses: Statement*.
func (p *parser) parseScript(ctx context.Context) ([]Command, error) {
	cmds := make([]Command, 0)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return cmds, nil
		}

		cmd, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		p.logger.TraceContext(ctx, "parsed statement",
			slog.String("keyword", cmd.Keyword),
			slog.String("position", cmd.Pos.String()),
		)

		cmds = append(cmds, cmd)

		p.skipSpace()

		if p.peek() == ';' {
			p.advance()
		}
	}
}

// parseStatement parses a single statement introduced by its keyword.
func (p *parser) parseStatement() (Command, error) {
	cmd := Command{Pos: p.position()}

	keyword, err := p.parseIdentifier()
	if err != nil {
		return cmd, p.errorf(cmd.Pos, "statement")
	}

	cmd.Keyword = keyword

	switch keyword {
	case KeywordVar:
		p.skipSpace()

		name, err := p.parseIdentifier()
		if err != nil {
			return cmd, err
		}

		cmd.Name = name

		p.skipSpace()

		if !p.expect('=') {
			return cmd, p.errorf(p.position(), `"="`)
		}

		p.skipSpace()

		arg, err := p.parseText("\n;")
		if err != nil {
			return cmd, err
		}

		cmd.Arg = &arg

	case KeywordShape, KeywordDefine:
		p.skipSpace()

		if isIdentifierStart(p.peek()) {
			cmd.Name, _ = p.parseIdentifier()
		} else if keyword == KeywordDefine {
			return cmd, p.errorf(p.position(), "template name")
		}

		p.skipWhitespaceAndComments()

		if p.expect(':') {
			p.skipWhitespaceAndComments()

			parent, err := p.parseIdentifier()
			if err != nil {
				return cmd, err
			}

			cmd.Parent = parent
		}

		if cmd.Params, err = p.parseBlock(); err != nil {
			return cmd, err
		}

	case KeywordLight:
		p.skipSpace()

		if isIdentifierStart(p.peek()) {
			cmd.Name, _ = p.parseIdentifier()
		}

		if cmd.Params, err = p.parseBlock(); err != nil {
			return cmd, err
		}

	case KeywordBackground, KeywordShadows, KeywordPhysics:
		if cmd.Params, err = p.parseBlock(); err != nil {
			return cmd, err
		}

	case KeywordPenUp, KeywordPenDown:

	case KeywordPenShape, KeywordPenColor, KeywordPenWidth, KeywordPenHeight,
		KeywordForward, KeywordUp, KeywordTurn, KeywordHeading, KeywordMoveTo:
		p.skipSpace()

		arg, err := p.parseRaw("\n;")
		if err != nil {
			return cmd, err
		}

		cmd.Arg = &arg

	default:
		return cmd, p.errorf(cmd.Pos, "statement keyword, found "+strconv.Quote(keyword))
	}

	return cmd, nil
}

// parseBlock parses: '{' (Ident ':' Raw Sep?)* '}'.
func (p *parser) parseBlock() ([]Param, error) {
	p.skipWhitespaceAndComments()

	if !p.expect('{') {
		return nil, p.errorf(p.position(), `"{"`)
	}

	params := make([]Param, 0)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, p.errorf(p.position(), `"}"`)
		}

		if p.expect('}') {
			return params, nil
		}

		pos := p.position()

		key, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		p.skipSpace()

		if !p.expect(':') {
			return nil, p.errorf(p.position(), `":" after `+strconv.Quote(key))
		}

		p.skipWhitespace()

		val, err := p.parseRaw("\n;,}")
		if err != nil {
			return nil, err
		}

		params = append(params, Param{
			Key:   strings.ToLower(key),
			Value: val,
			Pos:   pos,
		})

		p.skipSpace()

		if c := p.peek(); c == ';' || c == ',' {
			p.advance()
		}
	}
}

// parseRaw parses a vector, color, quoted string, or bare text terminated by
// any rune in stops.
func (p *parser) parseRaw(stops string) (Raw, error) {
	pos := p.position()

	switch p.peek() {
	case '[':
		return p.parseVector()

	case '#':
		p.advance()

		start := p.pos
		for isHexDigit(p.peek()) {
			p.advance()
		}

		if p.pos-start != 6 {
			return Raw{}, p.errorf(pos, "color #rrggbb")
		}

		return Raw{Kind: RawColor, Text: string(p.input[start-1 : p.pos]), Pos: pos}, nil

	case '"':
		start := p.pos

		if err := p.skipString('"'); err != nil {
			return Raw{}, err
		}

		s, err := strconv.Unquote(string(p.input[start:p.pos]))
		if err != nil {
			return Raw{}, p.errorf(pos, "valid string literal")
		}

		return Raw{Kind: RawString, Text: s, Pos: pos}, nil

	default:
		return p.parseText(stops)
	}
}

// parseVector parses: '[' Expr ',' Expr ',' Expr ']'.
func (p *parser) parseVector() (Raw, error) {
	pos := p.position()
	p.advance() // '['

	elems := make([]string, 0, 3)

	for {
		p.skipWhitespace()

		elem, err := p.parseText(",]")
		if err != nil {
			return Raw{}, err
		}

		elems = append(elems, elem.Text)

		p.skipWhitespace()

		if p.expect(']') {
			break
		}

		if !p.expect(',') {
			return Raw{}, p.errorf(p.position(), `"," or "]"`)
		}
	}

	if len(elems) != 3 {
		return Raw{}, p.errorf(pos, "three vector components")
	}

	return Raw{Kind: RawVector, Elems: elems, Pos: pos}, nil
}

// parseText captures bare text up to the first rune in stops, a comment, or
// an unbalanced closing bracket. Parentheses and brackets nest.
func (p *parser) parseText(stops string) (Raw, error) {
	pos := p.position()
	start := p.pos
	depth := 0

scan:
	for !p.eof() {
		ch := p.peek()

		if depth == 0 && strings.ContainsRune(stops, ch) {
			break
		}

		switch {
		case ch == '#', p.peekN(2) == "//", p.peekN(2) == "/*":
			break scan

		case ch == '(' || ch == '[':
			depth++

		case ch == ')' || ch == ']':
			if depth == 0 {
				break scan
			}

			depth--
		}

		p.advance()
	}

	text := strings.TrimSpace(string(p.input[start:p.pos]))
	if text == "" {
		return Raw{}, p.errorf(pos, "value")
	}

	return Raw{Kind: RawText, Text: text, Pos: pos}, nil
}

// parseIdentifier parses an identifier token.
func (p *parser) parseIdentifier() (string, error) {
	start := p.pos

	if !isIdentifierStart(p.peek()) {
		return "", p.errorf(p.position(), "identifier")
	}

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos]), nil
}

func (p *parser) errorf(pos Position, expected string) error {
	return syntaxError(p.input, pos, expected)
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// skipSpace skips whitespace other than newlines.
func (p *parser) skipSpace() {
	for !p.eof() && p.peek() != '\n' && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) skipWhitespaceAndComments() {
	for {
		p.skipWhitespace()

		switch {
		case p.peek() == '#', p.peekN(2) == "//":
			p.skipLineComment()

		case p.peekN(2) == "/*":
			p.skipBlockComment()

		default:
			return
		}
	}
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
}

func (p *parser) skipBlockComment() {
	p.advance() // skip '/'
	p.advance() // skip '*'

	for !p.eof() {
		if p.peekN(2) == "*/" {
			p.advance()
			p.advance()

			return
		}

		p.advance()
	}
}

func (p *parser) skipString(quote rune) error {
	pos := p.position()
	p.advance() // skip opening quote

	for !p.eof() && p.peek() != '\n' {
		ch := p.peek()
		if ch == '\\' {
			p.advance()

			if !p.eof() {
				p.advance()
			}

			continue
		}

		p.advance()

		if ch == quote {
			return nil
		}
	}

	return p.errorf(pos, "terminated string")
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
