package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of units of work (vertices), e.g. one vertex
// per package being cached.
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Log records a log message associated with this vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// MinLogLevel drops vertex log messages below this severity. The zero
	// value keeps info and above, hiding debug chatter unless asked for.
	MinLogLevel domain.LogLevel
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithMinLogLevel sets the lowest severity the vertex will record.
func WithMinLogLevel(level domain.LogLevel) VertexOption {
	return func(c *VertexConfig) { c.MinLogLevel = level }
}

type vertexContextKey struct{}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexContextKey{}, v)
}

// VertexFromContext retrieves the vertex attached to the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexContextKey{}).(Vertex)
	return v, ok
}
