package expr

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the role of a [Token].
type Kind int

const (
	KindNumber Kind = iota
	KindOperator
	KindFunction
	KindIdent
	KindLeftParen
	KindRightParen
)

// Token is one element of an infix or postfix expression.
type Token struct {
	Sym  string
	Num  float64
	Kind Kind
}

// Num returns a numeric literal token.
func Num(v float64) Token { return Token{Kind: KindNumber, Num: v} }

// Op returns an operator token.
func Op(sym string) Token { return Token{Kind: KindOperator, Sym: sym} }

// Func returns a function token.
func Func(name string) Token { return Token{Kind: KindFunction, Sym: name} }

// Ident returns a variable reference token.
func Ident(name string) Token { return Token{Kind: KindIdent, Sym: name} }

// LParen returns a left parenthesis token.
func LParen() Token { return Token{Kind: KindLeftParen, Sym: "("} }

// RParen returns a right parenthesis token.
func RParen() Token { return Token{Kind: KindRightParen, Sym: ")"} }

// String returns the source form of the token.
func (t Token) String() string {
	if t.Kind == KindNumber {
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	}

	return t.Sym
}

// Tokenize splits expression source into tokens.
//
// Names of built-in functions become [KindFunction] tokens; every other name
// becomes a [KindIdent] token to be resolved by a [Context].
func Tokenize(src string) ([]Token, error) {
	var tokens []Token

	for pos := 0; pos < len(src); {
		r, size := utf8.DecodeRuneInString(src[pos:])

		switch {
		case unicode.IsSpace(r):
			pos += size

		case r == '(':
			tokens = append(tokens, LParen())
			pos += size

		case r == ')':
			tokens = append(tokens, RParen())
			pos += size

		case isDigit(r) || (r == '.' && pos+1 < len(src) && isDigit(rune(src[pos+1]))):
			end := scanNumber(src, pos)

			v, err := strconv.ParseFloat(src[pos:end], 64)
			if err != nil {
				return nil, ErrUnknownSymbol.
					With(slog.Int("offset", pos)).
					Wrapf("%q", src[pos:end])
			}

			tokens = append(tokens, Num(v))
			pos = end

		case r == '_' || unicode.IsLetter(r):
			end := pos + size
			for end < len(src) {
				c, n := utf8.DecodeRuneInString(src[end:])
				if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
					break
				}

				end += n
			}

			name := src[pos:end]
			if _, ok := functions[name]; ok {
				tokens = append(tokens, Func(name))
			} else {
				tokens = append(tokens, Ident(name))
			}

			pos = end

		case strings.HasPrefix(src[pos:], "=="):
			tokens = append(tokens, Op("=="))
			pos += 2

		case strings.ContainsRune("+-*/%^<>", r):
			tokens = append(tokens, Op(string(r)))
			pos += size

		default:
			return nil, ErrUnknownSymbol.
				With(slog.Int("offset", pos)).
				Wrapf("%q", string(r))
		}
	}

	return tokens, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber returns the end offset of the numeric literal starting at pos.
// An exponent is consumed only when digits follow it.
func scanNumber(src string, pos int) int {
	end := pos
	for end < len(src) && (isDigit(rune(src[end])) || src[end] == '.') {
		end++
	}

	if end < len(src) && (src[end] == 'e' || src[end] == 'E') {
		exp := end + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}

		if exp < len(src) && isDigit(rune(src[exp])) {
			end = exp
			for end < len(src) && isDigit(rune(src[end])) {
				end++
			}
		}
	}

	return end
}
