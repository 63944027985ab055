package expr

import (
	"maps"
	"math"
	"slices"
)

// Context maps variable names to values.
//
// A Context is not safe for concurrent mutation.
type Context struct {
	vars map[string]float64
}

// NewContext returns a Context holding the constants pi and e.
func NewContext() *Context {
	return &Context{
		vars: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
	}
}

// Set binds name to v, replacing any previous binding.
func (c *Context) Set(name string, v float64) { c.vars[name] = v }

// Get returns the value bound to name.
func (c *Context) Get(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}

	v, ok := c.vars[name]

	return v, ok
}

// Names returns the bound variable names in sorted order.
func (c *Context) Names() []string {
	if c == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(c.vars))
}

// Resolve returns a copy of tokens with every identifier replaced by its
// bound value.
func (c *Context) Resolve(tokens []Token) ([]Token, error) {
	out := make([]Token, len(tokens))

	for i, tok := range tokens {
		if tok.Kind != KindIdent {
			out[i] = tok

			continue
		}

		v, ok := c.Get(tok.Sym)
		if !ok {
			return nil, ErrUndefinedVariable.Wrapf("%q", tok.Sym)
		}

		out[i] = Num(v)
	}

	return out, nil
}

// Eval tokenizes and evaluates src against the receiver.
func (c *Context) Eval(src string) (float64, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return 0, err
	}

	return Evaluate(tokens, c)
}
