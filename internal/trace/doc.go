// Package trace records what the resolver toolchain does and how long it
// takes.
//
//	qres check --trace=- --trace-level=detail src/
//
// Events are spans (Begin/End pairs) or instants (Point, Error). Each
// carries a Scope; the Level decides which scopes reach the tracer:
//
//	phase   driver runs and resolver passes
//	detail  + one span per compilation unit
//	debug   + every scope push and pop
//
// Error events pass every level except off, so --trace-level=error shows
// only units that failed to load.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "resolve-references", parent).
//		With("units", "3")
//	defer span.End("")
//
// StreamTracer writes events as they happen, RingTracer keeps the newest
// ones for a dump at exit and MultiTracer fans out to both.
package trace
