package chain

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/ops"
	"github.com/on-the-ground/extras_go/ops/arrays"
	"github.com/on-the-ground/extras_go/ops/booleans"
	"github.com/on-the-ground/extras_go/ops/collections"
	"github.com/on-the-ground/extras_go/ops/functions"
	"github.com/on-the-ground/extras_go/ops/numbers"
	stringops "github.com/on-the-ground/extras_go/ops/strings"
	"github.com/on-the-ground/extras_go/shared/helper"
	"github.com/on-the-ground/extras_go/typeclass"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedType is returned when the held value has no operation
	// table and cannot be converted to an array.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrUnknownOperation is returned when the value's table has no
	// operation of the requested name.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidArgument is fn.ErrInvalidArgument, returned by operations and
	// transforms given arguments they cannot use.
	ErrInvalidArgument = fn.ErrInvalidArgument
)

var defaultTables = map[typeclass.Tag]*ops.Table{
	typeclass.Boolean:    booleans.Table,
	typeclass.Number:     numbers.Table,
	typeclass.ArrayLike:  arrays.Table,
	typeclass.String:     stringops.Table,
	typeclass.Collection: collections.Table,
	typeclass.Callable:   functions.Table,
}

// Chain holds one value and replaces it with the result of every
// successful operation. A Chain is not safe for concurrent use.
type Chain struct {
	value any
	err   error
	id    string

	logger   *zap.Logger
	registry *fn.Registry
	tables   map[typeclass.Tag]*ops.Table
}

// New wraps value in a chain.
func New(value any, opts ...Option) *Chain {
	c := &Chain{
		value:    value,
		id:       uuid.NewString(),
		logger:   zap.NewNop(),
		registry: fn.DefaultRegistry,
		tables:   defaultTables,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("chain_id", c.id))
	c.logger.Debug("chain created", zap.Stringer("tag", typeclass.Classify(value)))
	return c
}

// Empty starts a chain on an empty []any.
func Empty(opts ...Option) *Chain {
	return New([]any{}, opts...)
}

// Invoke runs the operation called name on the held value with args and
// keeps its result. Function references among the value and args are
// resolved through the chain's registry first.
func (c *Chain) Invoke(name string, args ...any) *Chain {
	if c.err != nil {
		return c
	}

	value := c.value
	tag := typeclass.Classify(value)
	if tag == typeclass.Unclassified && typeclass.IsStructured(value) {
		if arr, ok := typeclass.ToArray(value); ok {
			value, tag = arr, typeclass.Classify(arr)
			c.logger.Debug("converted structured value", zap.String("type", fmt.Sprintf("%T", c.value)))
		}
	}

	table, ok := c.tables[tag]
	if !ok {
		return c.fail(name, fmt.Errorf("%w: %T", ErrUnsupportedType, c.value))
	}
	op, ok := table.Lookup(name)
	if !ok {
		return c.fail(name, fmt.Errorf("%w: %q has no operation %q", ErrUnknownOperation, table.Name(), name))
	}

	value, err := c.resolveRef(value)
	if err != nil {
		return c.fail(name, err)
	}
	resolved := make([]any, len(args))
	for i, a := range args {
		if resolved[i], err = c.resolveRef(a); err != nil {
			return c.fail(name, fmt.Errorf("argument %d: %w", i, err))
		}
	}

	c.logger.Debug("dispatch",
		zap.String("table", table.Name()),
		zap.String("op", name),
		zap.Int("args", len(args)),
	)
	res, err := op(value, resolved...)
	if err != nil {
		return c.fail(name, fmt.Errorf("%s.%s: %w", table.Name(), name, err))
	}
	c.value = res
	return c
}

// Then calls transform with the held value and keeps its result. transform
// is anything fn.Resolve accepts, with references looked up in the chain's
// registry.
func (c *Chain) Then(transform any) *Chain {
	return c.transform("then", transform)
}

// Tap is an alias of Then. The transform's result still replaces the held
// value, so a side-effect-only transform must return what it was given.
func (c *Chain) Tap(transform any) *Chain {
	return c.transform("tap", transform)
}

func (c *Chain) transform(name string, transform any) *Chain {
	if c.err != nil {
		return c
	}
	f, err := c.registry.Resolve(transform)
	if err != nil {
		return c.fail(name, err)
	}
	c.logger.Debug("dispatch", zap.String("op", name))
	res, err := f(c.value)
	if err != nil {
		return c.fail(name, err)
	}
	c.value = res
	return c
}

func (c *Chain) resolveRef(v any) (any, error) {
	ref, ok := v.(fn.Reference)
	if !ok {
		return v, nil
	}
	return c.registry.Resolve(ref)
}

func (c *Chain) fail(op string, err error) *Chain {
	c.err = err
	c.logger.Debug("operation failed", zap.String("op", op), zap.Error(err))
	return c
}

// Value returns the held value. After a failure it is the value from
// before the failing call.
func (c *Chain) Value() any {
	return c.value
}

// Err returns the first failure, or nil.
func (c *Chain) Err() error {
	return c.err
}

// Result returns the held value and the first failure.
func (c *Chain) Result() (any, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.value, nil
}

// Tag classifies the held value.
func (c *Chain) Tag() typeclass.Tag {
	return typeclass.Classify(c.value)
}

// ID identifies the chain in log entries.
func (c *Chain) ID() string {
	return c.id
}

// ValueAs returns the held value as T.
func ValueAs[T any](c *Chain) (T, error) {
	return helper.GetTypedValueOf[T](c.Result)
}
