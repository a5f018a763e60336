package minikanren

// Reification turns the internal answer representation into its
// presentation form: every term is resolved as deeply as the
// substitution allows, and variables that remained free are replaced by
// Unassigned markers numbered in first-encounter order.
//
// The marker index table is local to a single reification run. Two runs
// over the same substitution number their markers identically; runs
// over different substitutions are fully independent.

// reifier numbers free variables for one reification run.
type reifier struct {
	sub     *Substitution
	indices map[int64]int
}

func newReifier(sub *Substitution) *reifier {
	return &reifier{sub: sub, indices: make(map[int64]int)}
}

// markerFor returns the Unassigned marker for a free variable,
// assigning the next index on first encounter.
func (r *reifier) markerFor(v *Var) *Unassigned {
	idx, ok := r.indices[v.id]
	if !ok {
		idx = len(r.indices)
		r.indices[v.id] = idx
	}
	return &Unassigned{index: idx}
}

// reify deep-walks t, replacing every free variable with its marker.
func (r *reifier) reify(t Term) Term {
	t = r.sub.Walk(t)
	switch w := t.(type) {
	case *Var:
		return r.markerFor(w)
	case *Pair:
		return NewPair(r.reify(w.car), r.reify(w.cdr))
	case *Map:
		entries := make(map[string]Term, w.Len())
		for _, k := range w.Keys() {
			v, _ := w.Get(k)
			entries[k] = r.reify(v)
		}
		return &Map{entries: entries}
	case Composite:
		children := w.Children()
		reified := make([]Term, len(children))
		for i, c := range children {
			reified[i] = r.reify(c)
		}
		return w.Rebuild(reified)
	default:
		return t
	}
}

// Reify resolves t against this substitution into presentation form:
// the result contains no variables, only ground terms and Unassigned
// markers. Marker numbering starts at zero for each call.
func (s *Substitution) Reify(t Term) Term {
	return newReifier(s).reify(t)
}

// Reified returns the presentation form of the whole substitution.
// Every bound variable maps to the reified form of its value. When a
// variable's value walks to a free variable, both the bound variable
// and its free representative map to the same Unassigned marker, so
// that looking up either side of an unresolved equation answers with
// the shared marker.
//
// Marker numbering is by first encounter, traversing bindings in
// ascending variable-identity order; it is stable for the lifetime of
// the returned substitution.
func (s *Substitution) Reified() *Substitution {
	r := newReifier(s)
	out := NewSubstitution()
	s.Range(func(v *Var, _ Term) bool {
		reified := r.reify(v)
		out = out.Bind(v, reified)
		if rep, ok := s.Walk(v).(*Var); ok && rep.id != v.id {
			out = out.Bind(rep, reified)
		}
		return true
	})
	return out
}
