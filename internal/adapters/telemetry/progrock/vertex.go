package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/pakt/internal/core/domain"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex   *progrock.VertexRecorder
	minLevel domain.LogLevel
}

// Stdout returns a writer that streams onto the vertex's output pane.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer that streams onto the vertex's error pane.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records a log message on this vertex. Messages below the vertex's
// minimum level are dropped.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	if level < v.minLevel {
		return
	}
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

// Complete marks the vertex as finished, successfully or with an error.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
