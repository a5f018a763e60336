package minikanren

// Relational list operations. These relations are bidirectional: any
// argument may be a variable, and the engine enumerates the ways the
// relation can hold. Recursive relations delay their self-call so the
// search schedules the recursion instead of expanding it eagerly.

// Conso relates a head, a tail and the list formed by consing them.
//
// Example:
//
//	// list is [1, 2, 3]
//	Conso(NewAtom(1), NewList(NewAtom(2), NewAtom(3)), list)
func Conso(head, tail, list Term) Goal {
	return Eq(list, NewPair(head, tail))
}

// Appendo relates three lists where the third is the result of
// appending the first two. Classic relational append: it can
// concatenate, split a list into all prefix/suffix pairs, or check
// membership of a concatenation.
//
// Example:
//
//	x := NewVar("x")
//	goal := Appendo(NewList(NewAtom(1), NewAtom(2)), NewList(NewAtom(3)), x)
//	// x will be bound to [1, 2, 3]
func Appendo(l1, l2, l3 Term) Goal {
	return Disj(
		// Base case: appending the empty list to l2 gives l2.
		Conj(Eq(l1, Nil), Eq(l2, l3)),

		// Recursive case: l1 = (a . d), l3 = (a . res), append(d, l2, res).
		FreshN(3, func(vars ...*Var) Goal {
			a, d, res := vars[0], vars[1], vars[2]
			return Conj(
				Eq(l1, NewPair(a, d)),
				Eq(l3, NewPair(a, res)),
				Delayed(func() Goal { return Appendo(d, l2, res) }),
			)
		}),
	)
}

// Membero relates an element to a list containing it. With a variable
// element it enumerates the list's members; with a variable list it
// enumerates lists containing the element.
func Membero(x, list Term) Goal {
	return FreshN(2, func(vars ...*Var) Goal {
		head, tail := vars[0], vars[1]
		return Conj(
			Eq(list, NewPair(head, tail)),
			Disj(
				Eq(head, x),
				Delayed(func() Goal { return Membero(x, tail) }),
			),
		)
	})
}

// Rembero relates an element to input and output lists, where the
// output list is the input list with one occurrence of the element
// removed. The first answer removes the first occurrence; the recursive
// case does not require the head to differ from the element, so further
// answers remove later occurrences.
func Rembero(element, inputList, outputList Term) Goal {
	return Disj(
		// Base case: input is (element . rest), output is rest.
		Fresh(func(rest *Var) Goal {
			return Conj(
				Eq(inputList, NewPair(element, rest)),
				Eq(outputList, rest),
			)
		}),

		// Recursive case: input is (head . tail), output keeps head and
		// removes the element from tail.
		FreshN(3, func(vars ...*Var) Goal {
			head, tail, rest := vars[0], vars[1], vars[2]
			return Conj(
				Eq(inputList, NewPair(head, tail)),
				Eq(outputList, NewPair(head, rest)),
				Delayed(func() Goal { return Rembero(element, tail, rest) }),
			)
		}),
	)
}

// SameLengtho succeeds when two lists have the same length. Useful for
// constraining search in relations that could otherwise generate
// arbitrarily long lists.
func SameLengtho(xs, ys Term) Goal {
	return Disj(
		Conj(Eq(xs, Nil), Eq(ys, Nil)),
		FreshN(4, func(vars ...*Var) Goal {
			xh, xt, yh, yt := vars[0], vars[1], vars[2], vars[3]
			return Conj(
				Eq(xs, NewPair(xh, xt)),
				Eq(ys, NewPair(yh, yt)),
				Delayed(func() Goal { return SameLengtho(xt, yt) }),
			)
		}),
	)
}
