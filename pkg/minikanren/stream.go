package minikanren

// Stream is a lazy, potentially infinite sequence of answer states.
// It is a three-case sum:
//   - EmptyStream: no more answers
//   - *MatureStream: a head answer plus a (possibly lazy) tail
//   - *ImmatureStream: a suspension that, when forced, yields another
//     stream
//
// Streams are produced by goals, merged by Mplus and sequenced by Bind.
// Forcing an immature stream may yield another immature stream, so
// consumers go through Realize to reach a stable empty or mature form.
type Stream interface {
	isStream()
}

// EmptyStream is the exhausted stream.
type EmptyStream struct{}

func (EmptyStream) isStream() {}

// Empty is the canonical exhausted stream.
var Empty Stream = EmptyStream{}

// MatureStream carries a head answer and the rest of the stream.
type MatureStream struct {
	head *State
	tail Stream
}

func (*MatureStream) isStream() {}

// NewMature creates a stream with the given head answer and tail.
func NewMature(head *State, tail Stream) *MatureStream {
	return &MatureStream{head: head, tail: tail}
}

// Head returns the head answer.
func (m *MatureStream) Head() *State {
	return m.head
}

// Tail returns the rest of the stream.
func (m *MatureStream) Tail() Stream {
	return m.tail
}

// ImmatureStream is a suspended stream. The thunk runs when the
// suspension is forced; it is not memoised, because the search forces
// each suspension at most once along a derivation path.
type ImmatureStream struct {
	force func() Stream
}

func (*ImmatureStream) isStream() {}

// Suspend wraps a stream computation in a suspension. The computation
// does not run until Force is called.
func Suspend(force func() Stream) *ImmatureStream {
	return &ImmatureStream{force: force}
}

// Force runs the suspended computation one step. The result may itself
// be immature; use Realize to force to a stable form.
func (i *ImmatureStream) Force() Stream {
	return i.force()
}

// Realize forces suspensions until the stream is empty or mature.
// Idempotent on those two forms. Diverges only if the underlying
// program diverges without ever producing or refuting an answer.
func Realize(s Stream) Stream {
	for {
		i, ok := s.(*ImmatureStream)
		if !ok {
			return s
		}
		s = i.Force()
	}
}

// Mplus merges two streams. This is the operator that makes search
// complete: when the first stream is suspended, the suspension's
// partner moves to the front and the suspended side is forced later.
// That swap dovetails suspended branches with productive ones, so a
// diverging left operand cannot indefinitely postpone answers from the
// right operand.
func Mplus(s1, s2 Stream) Stream {
	switch t := s1.(type) {
	case EmptyStream:
		return s2
	case *MatureStream:
		return NewMature(t.head, Mplus(t.tail, s2))
	case *ImmatureStream:
		return Suspend(func() Stream {
			return Mplus(s2, t.Force())
		})
	default:
		panic("minikanren: unknown stream variant in Mplus")
	}
}

// Bind maps a goal across every answer of a stream and merges the
// resulting streams with Mplus. Suspensions are preserved: binding
// through an immature stream suspends the bind itself.
func Bind(s Stream, g Goal) Stream {
	switch t := s.(type) {
	case EmptyStream:
		return Empty
	case *MatureStream:
		return Mplus(g(t.head), Bind(t.tail, g))
	case *ImmatureStream:
		return Suspend(func() Stream {
			return Bind(t.Force(), g)
		})
	default:
		panic("minikanren: unknown stream variant in Bind")
	}
}

// Iterator walks a stream, realizing suspensions on demand and yielding
// one answer state at a time. The zero value is not usable; construct
// with NewIterator.
type Iterator struct {
	cur Stream
}

// NewIterator creates an iterator over the given stream.
func NewIterator(s Stream) *Iterator {
	return &Iterator{cur: s}
}

// Next realizes the stream and returns the next answer state. The
// second result is false when the stream is exhausted. Next can run
// forever if the underlying program diverges without producing further
// answers; bound consumption with Take or structural constraints.
func (it *Iterator) Next() (*State, bool) {
	s := Realize(it.cur)
	switch t := s.(type) {
	case EmptyStream:
		it.cur = s
		return nil, false
	case *MatureStream:
		it.cur = t.tail
		return t.head, true
	default:
		// Realize never returns an immature stream; reaching this is a
		// contract violation in the stream implementation itself.
		panic("minikanren: Realize returned an immature stream")
	}
}

// Take returns up to n answer states from the stream.
func (it *Iterator) Take(n int) []*State {
	var results []*State
	for i := 0; i < n; i++ {
		st, ok := it.Next()
		if !ok {
			break
		}
		results = append(results, st)
	}
	return results
}
