package fn

import (
	"fmt"
	"slices"
	"strings"

	memdb "github.com/hashicorp/go-memdb"
)

// Reference names a callable registered in a Registry, conventionally as
// "namespace::name".
type Reference struct {
	name string
}

// Ref builds a Reference to a registered callable.
func Ref(name string) Reference {
	return Reference{name: name}
}

func (Reference) Invocable() {}

func (r Reference) String() string { return r.name }

// Registry maps names to resolved callables.
// A lookup that misses locally is delegated to the parent registry.
type Registry struct {
	parent *Registry
	db     *memdb.MemDB
}

const funcsTable = "funcs"

type entry struct {
	Name      string
	Namespace string
	Func      Func
}

var registrySchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		funcsTable: {
			Name: funcsTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
				"namespace": {
					Name:         "namespace",
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "Namespace"},
				},
			},
		},
	},
}

// DefaultRegistry backs Resolve and the package-level combinators.
var DefaultRegistry = NewRegistry(nil)

// NewRegistry creates a registry. parent may be nil.
func NewRegistry(parent *Registry) *Registry {
	db, err := memdb.NewMemDB(registrySchema)
	if err != nil {
		panic(fmt.Sprintf("fn: invalid registry schema: %v", err))
	}
	return &Registry{parent: parent, db: db}
}

// Register resolves callable now and stores it under name, replacing any
// previous entry in this registry. The part of name before "::" is its
// namespace.
func (r *Registry) Register(name string, callable any) error {
	f, err := r.Resolve(callable)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}
	ns, _, found := strings.Cut(name, "::")
	if !found {
		ns = ""
	}

	txn := r.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(funcsTable, &entry{Name: name, Namespace: ns, Func: f}); err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}
	txn.Commit()
	return nil
}

// MustRegister is the panic-on-failure variant of Register. It returns r so
// registrations can be chained.
func (r *Registry) MustRegister(name string, callable any) *Registry {
	if err := r.Register(name, callable); err != nil {
		panic(err)
	}
	return r
}

// Unregister removes name from this registry. Parents are not touched.
func (r *Registry) Unregister(name string) bool {
	txn := r.db.Txn(true)
	defer txn.Abort()
	n, err := txn.DeleteAll(funcsTable, "id", name)
	if err != nil || n == 0 {
		return false
	}
	txn.Commit()
	return true
}

// Lookup finds name here or in an ancestor registry.
func (r *Registry) Lookup(name string) (Func, bool) {
	for reg := r; reg != nil; reg = reg.parent {
		if f, ok := reg.lookupLocal(name); ok {
			return f, true
		}
	}
	return nil, false
}

func (r *Registry) lookupLocal(name string) (Func, bool) {
	txn := r.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(funcsTable, "id", name)
	if err != nil || raw == nil {
		return nil, false
	}
	return raw.(*entry).Func, true
}

// Names lists the names this registry holds under namespace, in sorted
// order. Ancestors are not included.
func (r *Registry) Names(namespace string) []string {
	txn := r.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(funcsTable, "namespace", namespace)
	if err != nil {
		return nil
	}
	var names []string
	for obj := it.Next(); obj != nil; obj = it.Next() {
		names = append(names, obj.(*entry).Name)
	}
	slices.Sort(names)
	return names
}

// Resolve turns callable into a Func, looking references up in r.
func (r *Registry) Resolve(callable any) (Func, error) {
	switch c := callable.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil is not callable", ErrInvalidArgument)
	case Func:
		if c == nil {
			return nil, fmt.Errorf("%w: nil Func", ErrInvalidArgument)
		}
		return c, nil
	case func(...any) (any, error):
		if c == nil {
			return nil, fmt.Errorf("%w: nil func", ErrInvalidArgument)
		}
		return Func(c), nil
	case Reference:
		f, ok := r.Lookup(c.name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown reference %q", ErrInvalidArgument, c.name)
		}
		return f, nil
	}
	if m, ok := asMethod(callable); ok {
		return m.resolve()
	}
	if fv := reflectFunc(callable); fv.IsValid() {
		return adapt(fv), nil
	}
	return nil, fmt.Errorf("%w: %T is not callable", ErrInvalidArgument, callable)
}

// Register stores callable under name in the default registry.
func Register(name string, callable any) error {
	return DefaultRegistry.Register(name, callable)
}
