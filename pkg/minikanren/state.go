package minikanren

import "fmt"

// State is the execution state threaded through goal evaluation: a
// substitution paired with the counter used to mint fresh-variable
// names. States are immutable; the With* constructors return
// successors.
//
// The counter is never reset across disjunctive branches. It increases
// monotonically along every derivation path, so fresh variables that
// are alive at the same time always carry distinct names.
type State struct {
	sub    *Substitution
	nextID int
}

// NewState creates the initial state: an empty substitution and a name
// counter at zero.
func NewState() *State {
	return &State{sub: NewSubstitution(), nextID: 0}
}

// NewStateFrom creates a state with the given substitution and counter.
// Useful for resuming a computation from a previously produced answer.
func NewStateFrom(sub *Substitution, nextID int) *State {
	return &State{sub: sub, nextID: nextID}
}

// Sub returns the substitution of this state.
func (st *State) Sub() *Substitution {
	return st.sub
}

// NextID returns the current fresh-name counter.
func (st *State) NextID() int {
	return st.nextID
}

// NextUnusedName returns a freshly minted variable name derived from
// the counter: "$0", "$1", ...
func (st *State) NextUnusedName() string {
	return fmt.Sprintf("$%d", st.nextID)
}

// WithSubstitution returns a successor state carrying the given
// substitution and the same counter.
func (st *State) WithSubstitution(sub *Substitution) *State {
	return &State{sub: sub, nextID: st.nextID}
}

// WithNextName returns a successor state with the counter advanced by
// one.
func (st *State) WithNextName() *State {
	return &State{sub: st.sub, nextID: st.nextID + 1}
}

// String renders the state for debugging.
func (st *State) String() string {
	return fmt.Sprintf("State(%s, next=%d)", st.sub.String(), st.nextID)
}
