package expr

import "math"

// Assoc is the associativity of an operator.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

// Arity is the number of operands an operator consumes.
type Arity int

const (
	Unary  Arity = 1
	Binary Arity = 2
)

// negate is the internal symbol of unary minus in postfix output.
const negate = "~"

// tolerance is the absolute difference under which "==" considers two
// values equal.
const tolerance = 0.001

// Operator describes one entry of the precedence table.
type Operator struct {
	apply  func(a, b float64) float64
	Symbol string
	Rank   int
	Arity  Arity
	Assoc  Assoc
}

// rankFunction is the precedence of every unary function.
const rankFunction = 3

// operators is the precedence table, indexed by symbol.
// Rank increases with binding strength.
var operators = func() map[string]Operator {
	table := []Operator{
		{Symbol: "==", Rank: 1, Arity: Binary, Assoc: AssocNone, apply: equal},
		{Symbol: "<", Rank: 2, Arity: Binary, Assoc: AssocLeft, apply: less},
		{Symbol: ">", Rank: 2, Arity: Binary, Assoc: AssocLeft, apply: greater},
		{Symbol: "+", Rank: 4, Arity: Binary, Assoc: AssocLeft, apply: add},
		{Symbol: "-", Rank: 4, Arity: Binary, Assoc: AssocLeft, apply: sub},
		{Symbol: "*", Rank: 5, Arity: Binary, Assoc: AssocLeft, apply: mul},
		{Symbol: "/", Rank: 5, Arity: Binary, Assoc: AssocLeft, apply: div},
		{Symbol: "%", Rank: 5, Arity: Binary, Assoc: AssocLeft, apply: mod},
		{Symbol: "^", Rank: 6, Arity: Binary, Assoc: AssocRight, apply: math.Pow},
		{Symbol: negate, Rank: 7, Arity: Unary, Assoc: AssocRight, apply: neg},
	}

	m := make(map[string]Operator, len(table))
	for _, op := range table {
		m[op.Symbol] = op
	}

	return m
}()

// functions maps each unary function name to its implementation.
var functions = map[string]func(float64) float64{
	"sin":     math.Sin,
	"cos":     math.Cos,
	"tan":     math.Tan,
	"sqrt":    math.Sqrt,
	"abs":     math.Abs,
	"deg2rad": func(x float64) float64 { return x * math.Pi / 180 },
}

// Functions returns the names of the built-in functions.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}

	return names
}

// Lookup returns the table entry for an operator symbol. The unary negation
// entry is returned for [NegateSymbol].
func Lookup(sym string) (Operator, bool) {
	op, ok := operators[sym]

	return op, ok
}

// NegateSymbol is the symbol of unary negation in postfix sequences.
const NegateSymbol = negate

// pops reports whether op, on top of the stack, must be output before
// pushing next. A non-associative operator never pops.
func (op Operator) pops(next Operator) bool {
	switch next.Assoc {
	case AssocLeft:
		return op.Rank >= next.Rank
	case AssocRight:
		return op.Rank > next.Rank
	default:
		return false
	}
}

func add(a, b float64) float64 { return a + b }
func sub(a, b float64) float64 { return a - b }
func mul(a, b float64) float64 { return a * b }
func div(a, b float64) float64 { return a / b }
func neg(a, _ float64) float64 { return -a }

// mod is floored modulo: the result takes the sign of the divisor.
func mod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}

func equal(a, b float64) float64 { return truth(math.Abs(a-b) < tolerance) }

func less(a, b float64) float64 { return truth(a < b) }

func greater(a, b float64) float64 { return truth(a > b) }

func truth(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
