// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pakt/internal/core/ports"
)

// Recorder implements ports.Telemetry on a progrock tape. Each package
// being cached becomes one vertex on the tape.
type Recorder struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	next atomic.Uint64
}

// New creates a new Recorder with a default tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex. The digest salts the name with a
// sequence number so repeated work on the same package gets its own vertex.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	var cfg ports.VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := digest.FromString(fmt.Sprintf("%d:%s", r.next.Add(1), name))
	vertex := &Vertex{
		vertex:   r.rec.Vertex(d, name),
		minLevel: cfg.MinLogLevel,
	}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
