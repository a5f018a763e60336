// Package minikanren provides an embeddable miniKanren relational
// programming engine for Go.
//
// miniKanren is a domain-specific language for relational (logic)
// programming. It provides a minimal set of operators for building
// relational programs:
//   - Unification (Eq): constrains two terms to be equal
//   - Fresh variables: introduces new logic variables
//   - Disjunction (Disj/Conde): represents choice points
//   - Conjunction (Conj): combines goals that must all succeed
//   - Run: executes a goal and enumerates solutions
//
// The engine performs first-order syntactic unification over a
// heterogeneous term algebra (variables, typed atoms, cons lists and
// string-keyed maps) and produces a lazy, potentially infinite stream
// of answers. Search is complete: the stream operators interleave
// suspended branches with productive ones, so a diverging branch of a
// disjunction can never starve a converging one.
//
// Everything in the engine is value-semantic and persistent. Goals are
// pure functions from state to stream; substitutions and states are
// immutable and extension returns a successor. There are no goroutines,
// locks, or hidden mutable tables inside the core.
package minikanren

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/hashicorp/go-set/v3"
)

// Term represents any value in the miniKanren universe.
// The built-in variants are *Var, *Atom, *Pair, EmptyList, *Map and
// *Unassigned. User-defined compound terms participate through the
// Composite interface.
type Term interface {
	// String returns a human-readable representation of the term.
	String() string

	// Equal checks if this term is structurally equal to another term.
	// Equality is at the term level: it never consults a substitution.
	// Walking is the substitution's job; keeping the two layers apart
	// prevents cycles between the term model and the binding store.
	Equal(other Term) bool

	// IsVar returns true if this term is a logic variable.
	IsVar() bool
}

// Composite is the extension hook for user-defined compound terms.
// A composite exposes its subterms in a canonical order and can be
// rebuilt from transformed subterms. Unification unifies two composites
// of the same dynamic type by recursively unifying their children;
// deep-walking rebuilds the composite from deep-walked children.
//
// Implementations must supply an Equal that is consistent with the
// Equal of their fields.
type Composite interface {
	Term

	// Children returns the subterms in canonical order.
	Children() []Term

	// Rebuild constructs a new composite of the same kind from
	// replacement children. len(children) equals len(Children()).
	Rebuild(children []Term) Term
}

// varCounter issues process-unique variable identities.
var varCounter int64

// Var represents a logic variable. Each variable has a unique identity;
// two variables are equal iff they are the same variable. The name is a
// stable display label and carries no identity.
type Var struct {
	id   int64
	name string
}

// NewVar creates a new logic variable with the given display name.
// Every call yields a distinct variable, even for equal names.
func NewVar(name string) *Var {
	return &Var{id: atomic.AddInt64(&varCounter, 1), name: name}
}

// ID returns the unique identity of the variable.
func (v *Var) ID() int64 {
	return v.id
}

// Name returns the display name of the variable.
func (v *Var) Name() string {
	return v.name
}

// String returns the variable's display name, or a generated "_N" label
// for anonymous variables.
func (v *Var) String() string {
	if v.name != "" {
		return v.name
	}
	return fmt.Sprintf("_%d", v.id)
}

// Equal reports whether other is the same variable.
func (v *Var) Equal(other Term) bool {
	o, ok := other.(*Var)
	return ok && v.id == o.id
}

// IsVar always returns true for variables.
func (v *Var) IsVar() bool {
	return true
}

// Atom represents a ground host value. Atoms are immutable and
// represent themselves. Two atoms are equal when their underlying
// values have the same dynamic type and compare equal under Go's ==;
// atoms of different underlying types are never equal.
type Atom struct {
	value any
}

// NewAtom creates an atom from a comparable host value.
func NewAtom[T comparable](value T) *Atom {
	return &Atom{value: value}
}

// Value returns the underlying host value.
func (a *Atom) Value() any {
	return a.value
}

// String returns the host value's default formatting. Strings are
// quoted so that Atom("1") and Atom(1) render distinctly.
func (a *Atom) String() string {
	if s, ok := a.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", a.value)
}

// Equal reports same-type-and-equal-payload equality.
func (a *Atom) Equal(other Term) bool {
	o, ok := other.(*Atom)
	return ok && a.value == o.value
}

// IsVar always returns false for atoms.
func (a *Atom) IsVar() bool {
	return false
}

// EmptyList is the empty list terminator. The canonical instance is
// Nil; all empty lists are equal.
type EmptyList struct{}

// Nil is the empty list.
var Nil Term = EmptyList{}

// String renders the empty list.
func (EmptyList) String() string {
	return "[]"
}

// Equal reports whether other is also the empty list.
func (EmptyList) Equal(other Term) bool {
	_, ok := other.(EmptyList)
	return ok
}

// IsVar always returns false for the empty list.
func (EmptyList) IsVar() bool {
	return false
}

// Pair represents a cons cell. Lists are chains of pairs terminated by
// Nil; improper pairs are permitted.
type Pair struct {
	car Term
	cdr Term
}

// NewPair creates a cons cell with the given head and tail.
func NewPair(car, cdr Term) *Pair {
	return &Pair{car: car, cdr: cdr}
}

// Car returns the head of the pair.
func (p *Pair) Car() Term {
	return p.car
}

// Cdr returns the tail of the pair.
func (p *Pair) Cdr() Term {
	return p.cdr
}

// String renders proper lists as [a, b, c] and improper chains with a
// trailing "| tail" marker.
func (p *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(p.car.String())
	rest := p.cdr
	for {
		switch t := rest.(type) {
		case EmptyList:
			sb.WriteByte(']')
			return sb.String()
		case *Pair:
			sb.WriteString(", ")
			sb.WriteString(t.car.String())
			rest = t.cdr
		default:
			sb.WriteString(" | ")
			sb.WriteString(rest.String())
			sb.WriteByte(']')
			return sb.String()
		}
	}
}

// Equal checks structural equality of head and tail.
func (p *Pair) Equal(other Term) bool {
	o, ok := other.(*Pair)
	return ok && p.car.Equal(o.car) && p.cdr.Equal(o.cdr)
}

// IsVar always returns false for pairs.
func (p *Pair) IsVar() bool {
	return false
}

// NewList builds a proper list from the given terms.
//
// Example:
//
//	NewList(NewAtom(1), NewAtom(2), NewAtom(3))  // [1, 2, 3]
func NewList(terms ...Term) Term {
	result := Nil
	for i := len(terms) - 1; i >= 0; i-- {
		result = NewPair(terms[i], result)
	}
	return result
}

// Map is an unordered mapping from string keys to terms. Two maps are
// equal when their key sets coincide and the paired values are
// structurally equal.
type Map struct {
	entries map[string]Term
}

// NewMap creates a map term from the given entries. The input map is
// copied; later mutation of the argument does not affect the term.
func NewMap(entries map[string]Term) *Map {
	copied := make(map[string]Term, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Map{entries: copied}
}

// Get returns the value bound to key and whether the key is present.
func (m *Map) Get(key string) (Term, bool) {
	t, ok := m.entries[key]
	return t, ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Keys returns the keys in sorted order. Sorted order is the
// deterministic traversal order used by unification and deep-walking.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// keySet returns the key set for set-equality tests.
func (m *Map) keySet() *set.Set[string] {
	s := set.New[string](len(m.entries))
	for k := range m.entries {
		s.Insert(k)
	}
	return s
}

// String renders the map as {k: v, ...} in sorted key order.
func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(m.entries[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal reports key-set equality plus pointwise value equality.
func (m *Map) Equal(other Term) bool {
	o, ok := other.(*Map)
	if !ok || len(m.entries) != len(o.entries) {
		return false
	}
	if !m.keySet().Equal(o.keySet()) {
		return false
	}
	for k, v := range m.entries {
		if !v.Equal(o.entries[k]) {
			return false
		}
	}
	return true
}

// IsVar always returns false for maps.
func (m *Map) IsVar() bool {
	return false
}

// Unassigned marks a variable that remained free at reification time.
// It appears only in reified output, never as engine input. The index
// identifies which originally-free variable it stands for; numbering is
// by first encounter within a single reification run.
type Unassigned struct {
	index int
}

// Index returns the reification index of the marker.
func (u *Unassigned) Index() int {
	return u.index
}

// String renders the marker as an underscore followed by the index in
// Unicode subscript digits: _₀, _₁, ...
func (u *Unassigned) String() string {
	return "_" + subscript(u.index)
}

// Equal always returns false: the marker is a presentation-only
// sentinel and is never equal to anything, itself included.
func (u *Unassigned) Equal(other Term) bool {
	return false
}

// IsVar always returns false for unassigned markers.
func (u *Unassigned) IsVar() bool {
	return false
}

// subscriptDigits maps '0'..'9' to their Unicode subscript forms.
var subscriptDigits = []rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

// subscript renders a non-negative integer in subscript digits.
func subscript(n int) string {
	if n < 10 {
		return string(subscriptDigits[n])
	}
	return subscript(n/10) + string(subscriptDigits[n%10])
}
