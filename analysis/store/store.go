// Package store maps the scalar variables of a program point to their types
// and abstract values.
package store

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/immutable"
	"golang.org/x/exp/slices"

	"github.com/sjas/adlint-sub000/analysis/ctype"
	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/utils/indenter"
)

var ErrUndeclared = errors.New("undeclared variable")

// Binding is the type and current value of a variable.
type Binding struct {
	Type   ctype.Type
	Domain domain.Domain
}

// Store is a persistent map from variable names to bindings. Every update
// returns a new store and leaves the receiver unchanged.
type Store struct {
	f           *domain.Factory
	vars        *immutable.Map[string, Binding]
	unreachable bool
}

// New creates an empty store whose values are built by f.
func New(f *domain.Factory) Store {
	return Store{f: f, vars: immutable.NewMap[string, Binding](nil)}
}

// Factory returns the factory of the store's values.
func (s Store) Factory() *domain.Factory {
	return s.f
}

// Unreachable returns the store of a program point no execution reaches.
func (s Store) Unreachable() Store {
	s.unreachable = true
	return s
}

func (s Store) IsUnreachable() bool {
	return s.unreachable
}

// Declare introduces a variable. Without an initializer its value is the
// range of its type, marked as undefined.
func (s Store) Declare(name string, t ctype.Type, init domain.Domain) Store {
	if init == nil {
		init = s.f.Undefined(t.Range(s.f))
	} else {
		init = t.Coerce(s.f, init)
	}
	s.vars = s.vars.Set(name, Binding{Type: t, Domain: init})
	return s
}

// Lookup retrieves the binding of a variable.
func (s Store) Lookup(name string) (Binding, bool) {
	return s.vars.Get(name)
}

func (s Store) lookup(name string) (Binding, error) {
	b, ok := s.vars.Get(name)
	if !ok {
		return b, fmt.Errorf("%w: %s", ErrUndeclared, name)
	}
	return b, nil
}

// Assign coerces d to the type of the variable and binds it.
func (s Store) Assign(name string, d domain.Domain) (Store, error) {
	b, err := s.lookup(name)
	if err != nil {
		return s, err
	}
	b.Domain = b.Type.Coerce(s.f, d)
	s.vars = s.vars.Set(name, b)
	return s, nil
}

// Set binds d to the variable without coercion.
func (s Store) Set(name string, d domain.Domain) (Store, error) {
	b, err := s.lookup(name)
	if err != nil {
		return s, err
	}
	b.Domain = d
	s.vars = s.vars.Set(name, b)
	return s, nil
}

// Narrow refines the variable given that "name op operand" holds. The store
// becomes unreachable if no value of the variable satisfies the constraint.
func (s Store) Narrow(name string, op domain.Operator, operand domain.Domain) (Store, error) {
	b, err := s.lookup(name)
	if err != nil {
		return s, err
	}
	b.Domain = s.f.Narrow(b.Domain, op, operand)
	s.vars = s.vars.Set(name, b)
	if b.Domain.IsEmpty() {
		s.unreachable = true
	}
	return s, nil
}

// Widen grows the variable toward the constraint "name op operand", within
// the range of its type.
func (s Store) Widen(name string, op domain.Operator, operand domain.Domain) (Store, error) {
	b, err := s.lookup(name)
	if err != nil {
		return s, err
	}
	b.Domain = s.f.Intersection(s.f.Widen(b.Domain, op, operand), b.Type.Range(s.f))
	s.vars = s.vars.Set(name, b)
	return s, nil
}

// Join computes the pointwise union of two stores. A variable bound in only
// one of them joins as undefined.
func (s Store) Join(o Store) Store {
	switch {
	case s.unreachable:
		return o
	case o.unreachable:
		return s
	}

	res := New(s.f)
	for _, name := range mergeNames(s.Names(), o.Names()) {
		b1, ok1 := s.vars.Get(name)
		b2, ok2 := o.vars.Get(name)
		switch {
		case ok1 && ok2:
			b1.Domain = s.f.Union(b1.Domain, b2.Domain)
		case ok2:
			b1 = b2
			fallthrough
		default:
			b1.Domain = s.f.Undefined(b1.Domain)
		}
		res.vars = res.vars.Set(name, b1)
	}
	return res
}

func mergeNames(a, b []string) []string {
	names := append(slices.Clone(a), b...)
	slices.Sort(names)
	return slices.Compact(names)
}

// Equal checks that two stores bind the same variables to equal values.
func (s Store) Equal(o Store) bool {
	if s.unreachable || o.unreachable {
		return s.unreachable == o.unreachable
	}
	if s.vars.Len() != o.vars.Len() {
		return false
	}

	for iter := s.vars.Iterator(); !iter.Done(); {
		name, b1, _ := iter.Next()
		b2, ok := o.vars.Get(name)
		if !ok || b1.Type != b2.Type || !b1.Domain.Equal(b2.Domain) {
			return false
		}
	}
	return true
}

// Names returns the declared variables in lexicographic order.
func (s Store) Names() []string {
	names := make([]string, 0, s.vars.Len())
	for iter := s.vars.Iterator(); !iter.Done(); {
		name, _, _ := iter.Next()
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s Store) String() string {
	if s.unreachable {
		return "⊥"
	}

	var strs []string
	for _, name := range s.Names() {
		b, _ := s.vars.Get(name)
		strs = append(strs, fmt.Sprintf("%s %s = %s", name, b.Type, domain.Pretty(b.Domain)))
	}
	if len(strs) == 0 {
		return "{}"
	}
	return indenter.Indenter().Start("{").NestStrings(strs...).End("}")
}
