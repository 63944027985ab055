package expr

import (
	"errors"
	"math"
	"testing"
)

func TestContextEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"literal", "42", 42},
		{"precedence", "2 + 3 * 4", 14},
		{"left assoc sub", "10 - 4 - 3", 3},
		{"left assoc div", "64 / 4 / 2", 8},
		{"power", "2^3", 8},
		{"power right assoc", "2 ^ 3 ^ 2", 512},
		{"modulo", "100 % 33", 1},
		{"floored modulo", "-7 % 3", 2},
		{"greater", "5 > 3", 1},
		{"less", "5 < 3", 0},
		{"equal within tolerance", "1 == 1.0005", 1},
		{"not equal", "1 == 1.01", 0},
		{"equality pushed above arithmetic", "1 + 1 == 2", 1},
		{"equality pushed above comparison", "1 < 2 == 1", 0},
		{"equality chain groups right", "1 == 2 == 0", 0},
		{"equality after product", "2 * 3 == 6", 0},
		{"sin two pi", "sin(2*pi)", 0},
		{"cos zero", "cos(0)", 1},
		{"sqrt", "sqrt(16) + 1", 5},
		{"abs of negation", "abs(-3)", 3},
		{"deg2rad", "deg2rad(180)", math.Pi},
		{"nested functions", "sqrt(abs(-16))", 4},
		{"unary minus", "-5 + 2", -3},
		{"unary after operator", "2 * -3", -6},
		{"double negation", "--4", 4},
		{"negation binds before power", "-2^2", 4},
		{"unary after paren", "(-1)", -1},
		{"parentheses", "(2 + 3) * 4", 20},
		{"exponent literal", "1e3 / 10", 100},
		{"constant e", "e", math.E},
		{"divide by zero", "1 / 0", math.Inf(1)},
	}

	ctx := NewContext()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.Eval(tt.src)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.src, err)
			}

			if math.IsInf(tt.want, 0) {
				if got != tt.want {
					t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
				}

				return
			}

			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestContextEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrEmpty},
		{"blank", "   ", ErrEmpty},
		{"open paren", "(", ErrMismatchedParens},
		{"close paren", ")", ErrMismatchedParens},
		{"empty parens", "()", ErrEmpty},
		{"plus only", "+", ErrNotEnoughOperands},
		{"minus only", "-", ErrMissingOperand},
		{"trailing operator", "1 +", ErrNotEnoughOperands},
		{"adjacent values", "1 2", ErrTooManyValues},
		{"unclosed", "(1 + 2", ErrMismatchedParens},
		{"extra close", "1 + 2)", ErrMismatchedParens},
		{"bad symbol", "1 & 2", ErrUnknownSymbol},
		{"single equals", "1 = 2", ErrUnknownSymbol},
		{"undefined variable", "x + 1", ErrUndefinedVariable},
		{"function without operand", "sin()", ErrMissingOperand},
	}

	ctx := NewContext()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.Eval(tt.src)
			if err == nil {
				t.Fatalf("Eval(%q) expected error", tt.src)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Eval(%q) error = %v, want %v", tt.src, err, tt.want)
			}

			if !errors.Is(err, ErrEval) {
				t.Errorf("Eval(%q) error %v is not an evaluation error", tt.src, err)
			}
		})
	}
}

func TestEvaluate_Tokens(t *testing.T) {
	ctx := NewContext()
	ctx.Set("width", 10)

	tokens := []Token{Ident("width"), Op("/"), Num(4), Op("-"), LParen(), Op("-"), Num(1), RParen()}

	got, err := Evaluate(tokens, ctx)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	if got != 3.5 {
		t.Errorf("Evaluate() = %v, want 3.5", got)
	}

	if _, err := Evaluate(nil, ctx); !errors.Is(err, ErrEmpty) {
		t.Errorf("Evaluate(nil) error = %v, want %v", err, ErrEmpty)
	}

	if _, err := Evaluate([]Token{Ident("width")}, nil); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("Evaluate() with nil context error = %v, want %v", err, ErrUndefinedVariable)
	}
}

func TestPostfix(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		expect string
	}{
		{"precedence", "1 + 2 * 3", "1 2 3 * +"},
		{"left assoc", "1 - 2 + 3", "1 2 - 3 +"},
		{"right assoc", "2 ^ 3 ^ 2", "2 3 2 ^ ^"},
		{"function", "sin(1 + 2) * 3", "1 2 + sin 3 *"},
		{"negation", "-1 - -2", "1 ~ 2 ~ -"},
		{"comparison", "1 + 2 > 3", "1 2 + 3 >"},
		{"equality never pops", "1 < 2 == 1", "1 2 1 == <"},
		{"equality chain", "1 == 2 == 0", "1 2 0 == =="},
		{"equality after sum", "1 + 1 == 2", "1 1 2 == +"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.src, err)
			}

			postfix, err := Postfix(tokens)
			if err != nil {
				t.Fatalf("Postfix(%q) error: %v", tt.src, err)
			}

			var got string
			for i, tok := range postfix {
				if i > 0 {
					got += " "
				}

				got += tok.String()
			}

			if got != tt.expect {
				t.Errorf("Postfix(%q) = %q, want %q", tt.src, got, tt.expect)
			}
		})
	}
}

func TestContextNames(t *testing.T) {
	ctx := NewContext()
	ctx.Set("zeta", 1)
	ctx.Set("alpha", 2)

	got := ctx.Names()
	want := []string{"alpha", "e", "pi", "zeta"}

	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
