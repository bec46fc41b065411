package chain

import (
	"maps"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/ops"
	"github.com/on-the-ground/extras_go/typeclass"

	"go.uber.org/zap"
)

// Option configures a Chain.
type Option func(*Chain)

// WithLogger makes the chain log its lifecycle at debug level. The default
// logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegistry resolves fn.Reference values through r instead of
// fn.DefaultRegistry.
func WithRegistry(r *fn.Registry) Option {
	return func(c *Chain) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithTable dispatches values classified as tag to t.
func WithTable(tag typeclass.Tag, t *ops.Table) Option {
	return func(c *Chain) {
		if t == nil {
			return
		}
		c.tables = maps.Clone(c.tables)
		c.tables[tag] = t
	}
}
