package minikanren

import (
	"encoding/binary"
	"reflect"
	"strings"

	iradix "github.com/hashicorp/go-immutable-radix/v2"
)

// binding pairs a variable with the term it is bound to. The variable
// is carried alongside the term so that iteration and reification can
// recover the original *Var from the store key.
type binding struct {
	v    *Var
	term Term
}

// Substitution is a persistent, finite mapping from variables to terms.
// Bind returns a new substitution and never mutates the receiver, so
// substitutions can be shared freely across branches of the search.
//
// Invariants: no variable maps to itself (trivial identities are
// dropped by Bind), and the induced variable graph is acyclic. The
// engine performs no occurs check; callers that feed a variable a term
// containing that same variable get undefined walking behaviour. See
// CheckAcyclic for an opt-in diagnostic.
//
// The store is an immutable radix tree keyed by the variable's identity
// in big-endian form: extension is a persistent insert with structural
// sharing rather than a full copy of the binding map.
type Substitution struct {
	tree *iradix.Tree[binding]
}

// NewSubstitution creates an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{tree: iradix.New[binding]()}
}

// varKey encodes a variable identity as a radix-tree key.
func varKey(id int64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(id))
	return key[:]
}

// Len returns the number of bindings.
func (s *Substitution) Len() int {
	return s.tree.Len()
}

// Lookup returns the term bound to v, or nil if v is unbound.
func (s *Substitution) Lookup(v *Var) Term {
	b, ok := s.tree.Get(varKey(v.id))
	if !ok {
		return nil
	}
	return b.term
}

// Bind returns a new substitution extended with v -> term. A binding of
// a variable to itself is dropped. There is no check that v is already
// bound: the last writer wins. Unification only ever binds the walked
// representative of an unbound chain, so rebinding is unreachable from
// Unify; direct callers own the consequences.
func (s *Substitution) Bind(v *Var, term Term) *Substitution {
	if tv, ok := term.(*Var); ok && tv.id == v.id {
		return s
	}
	tree, _, _ := s.tree.Insert(varKey(v.id), binding{v: v, term: term})
	return &Substitution{tree: tree}
}

// Walk returns the representative term for t under this substitution.
// If t is a variable bound to another term, the binding chain is
// followed until an unbound variable or a non-variable term is reached.
// Walk does not recurse into the children of pairs or maps; resolving a
// composite's interior is DeepWalk's job.
//
// Terminates under the acyclicity invariant.
func (s *Substitution) Walk(t Term) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		bound := s.Lookup(v)
		if bound == nil {
			return t
		}
		t = bound
	}
}

// Unify attempts to unify u and v under this substitution. On success
// it returns the (possibly extended) substitution and true; on failure
// it returns nil and false. Failure is not an error: it is the normal
// outcome of incompatible terms.
//
// Unification rules, applied to the walked terms:
//   - structurally equal terms: success with no new binding
//   - a variable on either side: bind it to the other term
//   - two pairs: unify heads, then tails
//   - two maps: fail unless key sets coincide, then unify values in
//     sorted key order
//   - two composites of the same dynamic type: unify children pairwise
//   - anything else (distinct atoms, mixed kinds): failure
func (s *Substitution) Unify(u, v Term) (*Substitution, bool) {
	uw := s.Walk(u)
	vw := s.Walk(v)

	if uw.Equal(vw) {
		return s, true
	}

	if uv, ok := uw.(*Var); ok {
		return s.Bind(uv, vw), true
	}
	if vv, ok := vw.(*Var); ok {
		return s.Bind(vv, uw), true
	}

	if up, ok := uw.(*Pair); ok {
		vp, ok := vw.(*Pair)
		if !ok {
			return nil, false
		}
		s1, ok := s.Unify(up.car, vp.car)
		if !ok {
			return nil, false
		}
		return s1.Unify(up.cdr, vp.cdr)
	}

	if um, ok := uw.(*Map); ok {
		vm, ok := vw.(*Map)
		if !ok {
			return nil, false
		}
		return s.unifyMaps(um, vm)
	}

	if uc, ok := uw.(Composite); ok {
		vc, ok := vw.(Composite)
		if !ok || reflect.TypeOf(uc) != reflect.TypeOf(vc) {
			return nil, false
		}
		return s.unifyComposites(uc, vc)
	}

	return nil, false
}

// unifyMaps unifies two map terms. The key sets must coincide; values
// are then unified in sorted key order so that which pair fails first
// is deterministic.
func (s *Substitution) unifyMaps(u, v *Map) (*Substitution, bool) {
	if !u.keySet().Equal(v.keySet()) {
		return nil, false
	}
	cur := s
	for _, k := range u.Keys() {
		uv, _ := u.Get(k)
		vv, _ := v.Get(k)
		next, ok := cur.Unify(uv, vv)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// unifyComposites unifies two composites of the same dynamic type by
// folding unification over their children in canonical order.
func (s *Substitution) unifyComposites(u, v Composite) (*Substitution, bool) {
	uc := u.Children()
	vc := v.Children()
	if len(uc) != len(vc) {
		return nil, false
	}
	cur := s
	for i := range uc {
		next, ok := cur.Unify(uc[i], vc[i])
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// DeepWalk resolves t to a form free of remaining indirections: it
// walks t, then recurses into the children of pairs, maps and
// composites. Free variables remain as themselves.
func (s *Substitution) DeepWalk(t Term) Term {
	t = s.Walk(t)
	switch w := t.(type) {
	case *Pair:
		return NewPair(s.DeepWalk(w.car), s.DeepWalk(w.cdr))
	case *Map:
		entries := make(map[string]Term, w.Len())
		for _, k := range w.Keys() {
			v, _ := w.Get(k)
			entries[k] = s.DeepWalk(v)
		}
		return &Map{entries: entries}
	case Composite:
		children := w.Children()
		walked := make([]Term, len(children))
		for i, c := range children {
			walked[i] = s.DeepWalk(c)
		}
		return w.Rebuild(walked)
	default:
		return t
	}
}

// Range calls fn for every (variable, term) binding in ascending
// variable-identity order. Iteration stops early if fn returns false.
func (s *Substitution) Range(fn func(v *Var, t Term) bool) {
	it := s.tree.Root().Iterator()
	for _, b, ok := it.Next(); ok; _, b, ok = it.Next() {
		if !fn(b.v, b.term) {
			return
		}
	}
}

// String renders the substitution as {x=1, y=[2, 3]} in ascending
// variable-identity order.
func (s *Substitution) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Range(func(v *Var, t Term) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(v.String())
		sb.WriteByte('=')
		sb.WriteString(t.String())
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
