package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pakt/internal/adapters/telemetry"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Telemetry = (*telemetry.NoOp)(nil)
	var _ ports.Vertex = (*telemetry.NoOpVertex)(nil)
}

func TestNoOp_Record(t *testing.T) {
	rec := telemetry.NewNoOp()

	ctx, vertex := rec.Record(context.Background(), "cache left-pad@1.3.0")
	assert.NotNil(t, vertex)

	attached, ok := ports.VertexFromContext(ctx)
	assert.False(t, ok, "no-op recorder does not attach vertices")
	assert.Nil(t, attached)

	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Cached()
	vertex.Complete(nil)
	assert.NoError(t, rec.Close())
}
