package minikanren

import (
	"testing"
)

func atoms(values ...int) []Term {
	terms := make([]Term, len(values))
	for i, v := range values {
		terms[i] = NewAtom(v)
	}
	return terms
}

// TestConso tests the cons relation.
func TestConso(t *testing.T) {
	t.Run("forward construction", func(t *testing.T) {
		results := Run(5, func(q *Var) Goal {
			return Conso(NewAtom(1), NewList(atoms(2, 3)...), q)
		})

		if len(results) != 1 {
			t.Fatalf("expected 1 answer, got %d", len(results))
		}
		if !results[0].Equal(NewList(atoms(1, 2, 3)...)) {
			t.Errorf("expected [1, 2, 3], got %s", results[0])
		}
	})

	t.Run("backward decomposition", func(t *testing.T) {
		results := Run(5, func(q *Var) Goal {
			return Fresh(func(tail *Var) Goal {
				return Conso(q, tail, NewList(atoms(1, 2)...))
			})
		})

		if len(results) != 1 || !results[0].Equal(NewAtom(1)) {
			t.Errorf("expected head 1, got %v", results)
		}
	})
}

// TestAppendo tests relational append in all directions.
func TestAppendo(t *testing.T) {
	t.Run("concatenation", func(t *testing.T) {
		results := Run(5, func(q *Var) Goal {
			return Appendo(NewList(atoms(1, 2)...), NewList(atoms(3)...), q)
		})

		if len(results) != 1 {
			t.Fatalf("expected 1 answer, got %d", len(results))
		}
		if !results[0].Equal(NewList(atoms(1, 2, 3)...)) {
			t.Errorf("expected [1, 2, 3], got %s", results[0])
		}
	})

	t.Run("splitting enumerates every prefix and suffix", func(t *testing.T) {
		type split struct{ prefix, suffix Term }
		var splits []split

		results := Run(10, func(q *Var) Goal {
			return FreshN(2, func(vars ...*Var) Goal {
				a, b := vars[0], vars[1]
				return Conj(
					Appendo(a, b, NewList(atoms(1, 2, 3)...)),
					Eq(q, NewPair(a, b)),
				)
			})
		})

		for _, r := range results {
			p := r.(*Pair)
			splits = append(splits, split{p.Car(), p.Cdr()})
		}

		if len(splits) != 4 {
			t.Fatalf("a 3-element list has 4 splits, got %d", len(splits))
		}
		if !splits[0].prefix.Equal(Nil) {
			t.Errorf("first split should have empty prefix, got %s", splits[0].prefix)
		}
		if !splits[3].suffix.Equal(Nil) {
			t.Errorf("last split should have empty suffix, got %s", splits[3].suffix)
		}
	})

	t.Run("checking a wrong concatenation fails", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return Conj(
				Appendo(NewList(atoms(1)...), NewList(atoms(2)...), NewList(atoms(9, 9)...)),
				Eq(q, NewAtom(true)),
			)
		})

		if len(results) != 0 {
			t.Error("appendo should reject a wrong concatenation")
		}
	})
}

// TestMembero tests the membership relation.
func TestMembero(t *testing.T) {
	t.Run("enumerates members in order", func(t *testing.T) {
		results := RunStar(func(q *Var) Goal {
			return Membero(q, NewList(atoms(1, 2, 3)...))
		})

		if len(results) != 3 {
			t.Fatalf("expected 3 members, got %d", len(results))
		}
		for i, want := range atoms(1, 2, 3) {
			if !results[i].Equal(want) {
				t.Errorf("member %d: expected %s, got %s", i, want, results[i])
			}
		}
	})

	t.Run("checks membership", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return Conj(
				Membero(NewAtom(2), NewList(atoms(1, 2, 3)...)),
				Eq(q, NewAtom(true)),
			)
		})

		if len(results) != 1 {
			t.Error("2 should be a member of [1, 2, 3]")
		}
	})

	t.Run("rejects a non-member", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return Membero(NewAtom(9), NewList(atoms(1, 2, 3)...))
		})

		if len(results) != 0 {
			t.Error("9 should not be a member of [1, 2, 3]")
		}
	})
}

// TestRembero tests first-occurrence removal.
func TestRembero(t *testing.T) {
	t.Run("removes the first occurrence", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return Rembero(NewAtom(2), NewList(atoms(1, 2, 3, 2)...), q)
		})

		if len(results) != 1 {
			t.Fatalf("expected 1 answer, got %d", len(results))
		}
		if !results[0].Equal(NewList(atoms(1, 3, 2)...)) {
			t.Errorf("expected [1, 3, 2], got %s", results[0])
		}
	})

	t.Run("runs backwards to insert", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return Rembero(NewAtom(0), q, NewList(atoms(1, 2)...))
		})

		if len(results) != 1 {
			t.Fatalf("expected an insertion candidate, got %d answers", len(results))
		}
		if !results[0].Equal(NewList(atoms(0, 1, 2)...)) {
			t.Errorf("expected [0, 1, 2], got %s", results[0])
		}
	})
}

// TestSameLengtho tests the length-pairing relation.
func TestSameLengtho(t *testing.T) {
	t.Run("accepts equal lengths", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return Conj(
				SameLengtho(NewList(atoms(1, 2)...), NewList(atoms(8, 9)...)),
				Eq(q, NewAtom(true)),
			)
		})

		if len(results) != 1 {
			t.Error("lists of equal length should be related")
		}
	})

	t.Run("rejects different lengths", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return SameLengtho(NewList(atoms(1)...), NewList(atoms(1, 2)...))
		})

		if len(results) != 0 {
			t.Error("lists of different length should not be related")
		}
	})

	t.Run("constrains an unknown list's shape", func(t *testing.T) {
		results := Run(1, func(q *Var) Goal {
			return SameLengtho(q, NewList(atoms(7, 8)...))
		})

		if len(results) != 1 {
			t.Fatalf("expected a shape answer, got %d", len(results))
		}
		p, ok := results[0].(*Pair)
		if !ok {
			t.Fatalf("expected a two-element shape, got %s", results[0])
		}
		if _, ok := p.Car().(*Unassigned); !ok {
			t.Error("elements of the shaped list should be free markers")
		}
	})
}
