package minikanren

import (
	"github.com/hashicorp/go-hclog"
)

// Goal tracing. The engine itself is silent; Traced wraps individual
// goals with hclog instrumentation so a program's search can be
// observed without touching its semantics. A nil logger is replaced by a
// null logger; the wrapper still shadows every stream node and renders
// each answer's substitution whichever logger is used.

// Traced returns a goal equivalent to g that logs, at trace level,
// when the goal is entered, each answer it yields, and its exhaustion.
// The wrapped goal's answers and their order are unchanged.
func Traced(logger hclog.Logger, name string, g Goal) Goal {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return func(st *State) Stream {
		logger.Trace("goal entered", "goal", name, "bindings", st.Sub().Len(), "counter", st.NextID())
		return traceStream(logger, name, g(st))
	}
}

// traceStream shadows a stream, logging answers as they mature.
// Suspensions stay suspended: tracing must not force work the search
// has not scheduled.
func traceStream(logger hclog.Logger, name string, s Stream) Stream {
	switch t := s.(type) {
	case EmptyStream:
		logger.Trace("goal exhausted", "goal", name)
		return t
	case *MatureStream:
		logger.Trace("goal yielded", "goal", name, "substitution", t.head.Sub().String())
		return NewMature(t.head, traceStream(logger, name, t.tail))
	case *ImmatureStream:
		return Suspend(func() Stream {
			return traceStream(logger, name, t.Force())
		})
	default:
		panic("minikanren: unknown stream variant in traceStream")
	}
}
