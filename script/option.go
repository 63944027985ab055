package script

import "github.com/ardnew/worldc/log"

type variable struct {
	name  string
	value float64
}

type config struct {
	logger log.Logger
	group  string
	vars   []variable
}

// Option configures parsing and compilation.
type Option func(*config)

func makeConfig(opts ...Option) config {
	cfg := config{logger: log.Default()}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the logger used to trace compilation.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithGroup restricts the assembled objects to shapes in group.
func WithGroup(group string) Option {
	return func(c *config) { c.group = group }
}

// WithVariable declares a variable before the first statement is applied.
func WithVariable(name string, value float64) Option {
	return func(c *config) { c.vars = append(c.vars, variable{name, value}) }
}
