package minikanren

import (
	"testing"
)

// answers drains up to n states from a stream and returns them.
func answers(s Stream, n int) []*State {
	return NewIterator(s).Take(n)
}

// TestRealize tests forcing of suspensions.
func TestRealize(t *testing.T) {
	t.Run("idempotent on empty and mature", func(t *testing.T) {
		if Realize(Empty) != Empty {
			t.Error("realizing an empty stream should return it unchanged")
		}

		m := NewMature(NewState(), Empty)
		if Realize(m) != Stream(m) {
			t.Error("realizing a mature stream should return it unchanged")
		}
	})

	t.Run("forces nested suspensions", func(t *testing.T) {
		st := NewState()
		s := Suspend(func() Stream {
			return Suspend(func() Stream {
				return NewMature(st, Empty)
			})
		})

		r := Realize(s)
		m, ok := r.(*MatureStream)
		if !ok {
			t.Fatal("realize should reach the mature stream")
		}
		if m.Head() != st {
			t.Error("realize should preserve the head answer")
		}
	})

	t.Run("suspension is not forced until realized", func(t *testing.T) {
		forced := false
		s := Suspend(func() Stream {
			forced = true
			return Empty
		})

		if forced {
			t.Fatal("creating a suspension must not force it")
		}

		Realize(s)
		if !forced {
			t.Error("realize should force the suspension")
		}
	})
}

// TestMplus tests the interleaving merge.
func TestMplus(t *testing.T) {
	t.Run("empty is the identity", func(t *testing.T) {
		st := NewState()
		m := NewMature(st, Empty)

		if Mplus(Empty, m) != Stream(m) {
			t.Error("Mplus(Empty, s) should be s")
		}

		got := answers(Mplus(m, Empty), 2)
		if len(got) != 1 || got[0] != st {
			t.Error("Mplus(s, Empty) should yield s's answers")
		}
	})

	t.Run("mature head stays in front", func(t *testing.T) {
		st1, st2 := NewState(), NewState().WithNextName()
		s := Mplus(NewMature(st1, Empty), NewMature(st2, Empty))

		got := answers(s, 3)
		if len(got) != 2 || got[0] != st1 || got[1] != st2 {
			t.Error("Mplus should yield left answers before right answers")
		}
	})

	t.Run("suspension swaps its partner to the front", func(t *testing.T) {
		st, late := NewState(), NewState()
		suspended := Suspend(func() Stream { return NewMature(late, Empty) })
		s := Mplus(suspended, NewMature(st, Empty))

		got := answers(s, 3)
		if len(got) != 2 || got[0] != st || got[1] != late {
			t.Error("the mature partner should be scheduled before the suspension")
		}
	})

	t.Run("diverging left operand cannot starve the right", func(t *testing.T) {
		// A stream that suspends forever without producing anything.
		var diverge func() Stream
		diverge = func() Stream {
			return Suspend(diverge)
		}

		st := NewState()
		s := Mplus(diverge(), NewMature(st, Empty))

		got, ok := NewIterator(s).Next()
		if !ok || got != st {
			t.Error("the converging side's answer must eventually appear")
		}
	})
}

// TestStreamBind tests goal sequencing across streams.
func TestStreamBind(t *testing.T) {
	t.Run("binding the empty stream is empty", func(t *testing.T) {
		if Bind(Empty, Success) != Stream(Empty) {
			t.Error("Bind(Empty, g) should be Empty")
		}
	})

	t.Run("bind maps the goal over every answer", func(t *testing.T) {
		x := NewVar("x")
		st := NewState()

		s := Mplus(
			Eq(x, NewAtom(1))(st),
			Eq(x, NewAtom(2))(st),
		)

		y := NewVar("y")
		bound := Bind(s, Eq(y, NewAtom(10)))

		got := answers(bound, 5)
		if len(got) != 2 {
			t.Fatalf("expected 2 answers, got %d", len(got))
		}
		for _, answer := range got {
			if !answer.Sub().Walk(y).Equal(NewAtom(10)) {
				t.Error("every answer should carry the bound goal's binding")
			}
		}
	})

	t.Run("bind preserves suspensions", func(t *testing.T) {
		forced := false
		s := Suspend(func() Stream {
			forced = true
			return Empty
		})

		bound := Bind(s, Success)
		if forced {
			t.Fatal("bind must not force a suspension eagerly")
		}

		if _, ok := bound.(*ImmatureStream); !ok {
			t.Error("binding an immature stream should stay immature")
		}
	})

	t.Run("failing goal filters all answers", func(t *testing.T) {
		st := NewState()
		s := NewMature(st, NewMature(st.WithNextName(), Empty))

		got := answers(Bind(s, Failure), 5)
		if len(got) != 0 {
			t.Errorf("expected no answers, got %d", len(got))
		}
	})
}

// TestIterator tests the stream consumption driver.
func TestIterator(t *testing.T) {
	t.Run("exhausted iterator keeps returning false", func(t *testing.T) {
		it := NewIterator(Empty)

		for i := 0; i < 3; i++ {
			if _, ok := it.Next(); ok {
				t.Fatal("empty stream should never yield")
			}
		}
	})

	t.Run("take stops at stream end", func(t *testing.T) {
		st := NewState()
		s := NewMature(st, Empty)

		got := NewIterator(s).Take(10)
		if len(got) != 1 {
			t.Errorf("expected 1 answer, got %d", len(got))
		}
	})

	t.Run("take realizes only what it needs", func(t *testing.T) {
		forcedTail := false
		s := NewMature(NewState(), Suspend(func() Stream {
			forcedTail = true
			return Empty
		}))

		it := NewIterator(s)
		it.Take(1)
		if forcedTail {
			t.Error("taking the head must not force the tail")
		}
	})
}
