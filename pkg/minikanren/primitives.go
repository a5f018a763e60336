package minikanren

// Goal is the logical building block: a pure function from a state to a
// stream of answer states. Goals carry no hidden mutable state; the
// fresh-name counter is threaded through the state parameter.
type Goal func(*State) Stream

// Eq creates a unification goal that constrains two terms to be equal.
// This is the fundamental operation in miniKanren: it attempts to make
// the two terms identical by binding variables as needed.
//
// The goal yields exactly one answer when unification succeeds and none
// when it fails.
//
// Example:
//
//	x := NewVar("x")
//	goal := Eq(x, NewAtom("hello"))  // binds x to "hello"
func Eq(u, v Term) Goal {
	return func(st *State) Stream {
		sub, ok := st.Sub().Unify(u, v)
		if !ok {
			return Empty
		}
		return NewMature(st.WithSubstitution(sub), Empty)
	}
}

// Success is a goal that always succeeds, leaving the state unchanged.
var Success Goal = Eq(NewAtom(true), NewAtom(true))

// Failure is a goal that always fails.
var Failure Goal = Eq(NewAtom(false), NewAtom(true))

// Disj creates a disjunction goal that succeeds if any of the goals
// succeed. The answer streams are merged with Mplus, so disjunction is
// fair: a diverging branch cannot starve answers from a converging one.
//
// Example:
//
//	x := NewVar("x")
//	goal := Disj(Eq(x, NewAtom(1)), Eq(x, NewAtom(2)))  // x is 1 or 2
func Disj(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Failure
	}
	if len(goals) == 1 {
		return goals[0]
	}
	return func(st *State) Stream {
		s := goals[0](st)
		for _, g := range goals[1:] {
			s = Mplus(s, g(st))
		}
		return s
	}
}

// Conj creates a conjunction goal that requires all goals to succeed.
// Each goal is bound across the answer stream of the previous one.
//
// Example:
//
//	x := NewVar("x")
//	y := NewVar("y")
//	goal := Conj(Eq(x, NewAtom(1)), Eq(y, NewAtom(2)))
func Conj(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Success
	}
	if len(goals) == 1 {
		return goals[0]
	}
	return func(st *State) Stream {
		s := goals[0](st)
		for _, g := range goals[1:] {
			s = Bind(s, g)
		}
		return s
	}
}

// Conde is an alias for Disj, following miniKanren naming conventions.
func Conde(goals ...Goal) Goal {
	return Disj(goals...)
}

// Fresh introduces one new logic variable. The constructor receives the
// fresh variable and returns the goal to run; the variable's name is
// minted from the state's counter, which is advanced before the goal
// runs. Nest Fresh calls for more variables, or use FreshN.
//
// Example:
//
//	goal := Fresh(func(x *Var) Goal {
//	    return Eq(x, NewAtom(42))
//	})
func Fresh(constructor func(*Var) Goal) Goal {
	return func(st *State) Stream {
		v := NewVar(st.NextUnusedName())
		return constructor(v)(st.WithNextName())
	}
}

// FreshN introduces n new logic variables at once. Variables are
// allocated in order, each advancing the name counter, so their names
// match what n nested Fresh calls would have produced.
//
// Example:
//
//	goal := FreshN(2, func(vars ...*Var) Goal {
//	    x, y := vars[0], vars[1]
//	    return Conj(Eq(x, y), Eq(y, NewAtom(1)))
//	})
func FreshN(n int, constructor func(vars ...*Var) Goal) Goal {
	return func(st *State) Stream {
		vars := make([]*Var, n)
		cur := st
		for i := range vars {
			vars[i] = NewVar(cur.NextUnusedName())
			cur = cur.WithNextName()
		}
		return constructor(vars...)(cur)
	}
}

// Delayed wraps a goal in a suspension. The constructor is not invoked
// and the goal body is not evaluated until the search schedules the
// suspension, which is what keeps recursive relations from recursing
// eagerly without bound.
//
// Recursive relations wrap their self-call:
//
//	func Loop(z Term) Goal {
//	    return Delayed(func() Goal { return Loop(z) })
//	}
func Delayed(constructor func() Goal) Goal {
	return func(st *State) Stream {
		return Suspend(func() Stream {
			return constructor()(st)
		})
	}
}

// InEnvironment reifies the current substitution and hands it to a goal
// constructor. The constructor inspects the reified bindings and
// decides which goal to run; the chosen goal still runs against the
// live state. This is the hook the type-test goals are built on.
func InEnvironment(constructor func(*Substitution) Goal) Goal {
	return func(st *State) Stream {
		return constructor(st.Sub().Reified())(st)
	}
}

// Varo succeeds when t is still a variable under the current
// substitution. An Unassigned marker in the reified environment stands
// for an originally-free variable, so it counts as a variable here.
func Varo(t Term) Goal {
	return InEnvironment(func(env *Substitution) Goal {
		switch env.Walk(t).(type) {
		case *Var, *Unassigned:
			return Success
		default:
			return Failure
		}
	})
}

// Atomo succeeds when t resolves to an atom under the current
// substitution.
func Atomo(t Term) Goal {
	return InEnvironment(func(env *Substitution) Goal {
		if _, ok := env.Walk(t).(*Atom); ok {
			return Success
		}
		return Failure
	})
}

// TypedAtomo succeeds when t resolves to an atom whose underlying host
// value has type T.
//
// Example:
//
//	TypedAtomo[int](x)  // succeeds when x holds an int atom
func TypedAtomo[T comparable](t Term) Goal {
	return InEnvironment(func(env *Substitution) Goal {
		if a, ok := env.Walk(t).(*Atom); ok {
			if _, ok := a.value.(T); ok {
				return Success
			}
		}
		return Failure
	})
}

// Listo succeeds when t resolves to a list (a cons cell or the empty
// list) under the current substitution.
func Listo(t Term) Goal {
	return InEnvironment(func(env *Substitution) Goal {
		switch env.Walk(t).(type) {
		case *Pair, EmptyList:
			return Success
		default:
			return Failure
		}
	})
}

// Mapo succeeds when t resolves to a map term under the current
// substitution.
func Mapo(t Term) Goal {
	return InEnvironment(func(env *Substitution) Goal {
		if _, ok := env.Walk(t).(*Map); ok {
			return Success
		}
		return Failure
	})
}

// RunGoal applies a goal to the initial state and returns an iterator
// over the resulting answer states.
func RunGoal(g Goal) *Iterator {
	return RunGoalFrom(NewState(), g)
}

// RunGoalFrom applies a goal to a caller-supplied state and returns an
// iterator over the resulting answer states.
func RunGoalFrom(st *State, g Goal) *Iterator {
	return NewIterator(g(st))
}

// Run executes a goal and returns up to n solutions as the reified
// values of the query variable. This is the main entry point for
// executing miniKanren programs.
//
// Example:
//
//	solutions := Run(5, func(q *Var) Goal {
//	    return Eq(q, NewAtom("hello"))
//	})
//	// Returns: ["hello"]
func Run(n int, goalFunc func(q *Var) Goal) []Term {
	st := NewState()
	q := NewVar(st.NextUnusedName())
	it := RunGoalFrom(st.WithNextName(), goalFunc(q))

	var results []Term
	for _, answer := range it.Take(n) {
		results = append(results, answer.Sub().Reify(q))
	}
	return results
}

// RunStar executes a goal and returns all solutions.
// WARNING: this can run forever if the goal has infinite solutions; use
// Run with a bound for programs that may diverge.
func RunStar(goalFunc func(q *Var) Goal) []Term {
	st := NewState()
	q := NewVar(st.NextUnusedName())
	it := RunGoalFrom(st.WithNextName(), goalFunc(q))

	var results []Term
	for {
		answer, ok := it.Next()
		if !ok {
			return results
		}
		results = append(results, answer.Sub().Reify(q))
	}
}
