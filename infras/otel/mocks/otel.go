package mocks

import (
	"context"

	"workforce/infras/otel"
)

type noopOtel struct{}

// NewOtel returns a tracer that opens no spans.
func NewOtel() otel.Otel {
	return noopOtel{}
}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noopOtel) Shutdown(context.Context) error {
	return nil
}
