package expr

import "log/slog"

// Postfix reorders an infix token sequence into postfix order using the
// shunting-yard algorithm. Identifiers must already be resolved.
//
// Unary minus is emitted with the symbol [NegateSymbol].
func Postfix(tokens []Token) ([]Token, error) {
	var (
		out   = make([]Token, 0, len(tokens))
		stack = make([]Token, 0, len(tokens))
		prev  *Token
	)

	for i := range tokens {
		tok := tokens[i]

		switch tok.Kind {
		case KindNumber:
			out = append(out, tok)

		case KindFunction:
			if _, ok := functions[tok.Sym]; !ok {
				return nil, ErrUnknownSymbol.Wrapf("%q", tok.Sym)
			}

			stack = append(stack, tok)

		case KindLeftParen:
			stack = append(stack, tok)

		case KindRightParen:
			for {
				if len(stack) == 0 {
					return nil, ErrMismatchedParens.
						With(slog.Int("token", i)).
						Wrapf("unexpected %q", ")")
				}

				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if top.Kind == KindLeftParen {
					break
				}

				out = append(out, top)
			}

			if n := len(stack); n > 0 && stack[n-1].Kind == KindFunction {
				out = append(out, stack[n-1])
				stack = stack[:n-1]
			}

		case KindOperator:
			sym := tok.Sym
			if sym == "-" && unaryPosition(prev) {
				sym = negate
			}

			op, ok := operators[sym]
			if !ok || sym == negate && tok.Sym != "-" {
				return nil, ErrUnknownSymbol.Wrapf("%q", tok.Sym)
			}

			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != KindOperator || !operators[top.Sym].pops(op) {
					break
				}

				out = append(out, top)
				stack = stack[:len(stack)-1]
			}

			tok = Op(sym)
			stack = append(stack, tok)

		case KindIdent:
			return nil, ErrUndefinedVariable.Wrapf("%q", tok.Sym)

		default:
			return nil, ErrInternal.Wrapf("token kind %d", tok.Kind)
		}

		prev = &tok
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.Kind == KindLeftParen {
			return nil, ErrMismatchedParens.Wrapf("unclosed %q", "(")
		}

		out = append(out, top)
	}

	return out, nil
}

// unaryPosition reports whether a "-" following prev is negation.
func unaryPosition(prev *Token) bool {
	return prev == nil ||
		prev.Kind == KindLeftParen ||
		prev.Kind == KindOperator
}

// Reduce evaluates a postfix token sequence.
func Reduce(postfix []Token) (float64, error) {
	stack := make([]float64, 0, len(postfix))

	for _, tok := range postfix {
		switch tok.Kind {
		case KindNumber:
			stack = append(stack, tok.Num)

		case KindFunction:
			fn, ok := functions[tok.Sym]
			if !ok {
				return 0, ErrUnknownSymbol.Wrapf("%q", tok.Sym)
			}

			n := len(stack)
			if n < 1 {
				return 0, ErrMissingOperand.Wrapf("%s", tok.Sym)
			}

			stack[n-1] = fn(stack[n-1])

		case KindOperator:
			op, ok := operators[tok.Sym]
			if !ok {
				return 0, ErrUnknownSymbol.Wrapf("%q", tok.Sym)
			}

			n := len(stack)

			switch op.Arity {
			case Unary:
				if n < 1 {
					return 0, ErrMissingOperand.Wrapf("%s", op.display())
				}

				stack[n-1] = op.apply(stack[n-1], 0)

			case Binary:
				if n < 2 {
					return 0, ErrNotEnoughOperands.Wrapf("%s", op.Symbol)
				}

				stack[n-2] = op.apply(stack[n-2], stack[n-1])
				stack = stack[:n-1]

			default:
				return 0, ErrInternal.Wrapf("operator %q arity %d", op.Symbol, op.Arity)
			}

		default:
			return 0, ErrInternal.Wrapf("unexpected %q in postfix", tok.String())
		}
	}

	switch len(stack) {
	case 0:
		return 0, ErrEmpty
	case 1:
		return stack[0], nil
	default:
		return 0, ErrTooManyValues.With(slog.Int("count", len(stack)))
	}
}

func (op Operator) display() string {
	if op.Symbol == negate {
		return "negation"
	}

	return op.Symbol
}

// Evaluate resolves identifiers in tokens against ctx, converts the result to
// postfix, and reduces it to a single value. A nil ctx resolves nothing.
func Evaluate(tokens []Token, ctx *Context) (float64, error) {
	if len(tokens) == 0 {
		return 0, ErrEmpty
	}

	resolved, err := ctx.Resolve(tokens)
	if err != nil {
		return 0, err
	}

	postfix, err := Postfix(resolved)
	if err != nil {
		return 0, err
	}

	return Reduce(postfix)
}
