package minikanren

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// CheckAcyclic verifies the acyclicity invariant of a substitution: no
// variable may reach itself by following bindings through terms. The
// engine performs no occurs check, so a caller that binds variables
// directly can construct a cycle; walking a cycle of variable-to-variable
// bindings, or deep-walking or reifying a cycle through a composite,
// does not terminate. This diagnostic makes one depth-first pass over
// the bindings in linear time and reports, all at once, a cycle for
// every back edge it meets. A cycle entered only through a variable the
// pass has already finished is not listed separately.
//
// Returns nil when the substitution is acyclic.
func (s *Substitution) CheckAcyclic() error {
	const (
		unvisited = iota
		onPath
		done
	)
	status := make(map[int64]int, s.Len())
	var result *multierror.Error

	var visitTerm func(t Term, path []*Var)
	var visitVar func(v *Var, path []*Var)

	visitVar = func(v *Var, path []*Var) {
		switch status[v.id] {
		case done:
			return
		case onPath:
			start := 0
			for i, p := range path {
				if p.id == v.id {
					start = i
					break
				}
			}
			names := make([]string, 0, len(path)-start+1)
			for _, p := range path[start:] {
				names = append(names, p.String())
			}
			names = append(names, v.String())
			result = multierror.Append(result, fmt.Errorf(
				"binding cycle: %s", strings.Join(names, " -> ")))
			return
		}
		bound := s.Lookup(v)
		if bound == nil {
			status[v.id] = done
			return
		}
		status[v.id] = onPath
		visitTerm(bound, append(path, v))
		status[v.id] = done
	}

	visitTerm = func(t Term, path []*Var) {
		switch w := t.(type) {
		case *Var:
			visitVar(w, path)
		case *Pair:
			visitTerm(w.car, path)
			visitTerm(w.cdr, path)
		case *Map:
			for _, k := range w.Keys() {
				v, _ := w.Get(k)
				visitTerm(v, path)
			}
		case Composite:
			for _, c := range w.Children() {
				visitTerm(c, path)
			}
		}
	}

	s.Range(func(v *Var, _ Term) bool {
		visitVar(v, nil)
		return true
	})

	return result.ErrorOrNil()
}
