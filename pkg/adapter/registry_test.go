package adapter_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
)

type stubAdapter struct {
	adapter.BaseSQLAdapter
}

func (s *stubAdapter) Connect(_ context.Context, _ adapter.Config) error { return nil }

func (s *stubAdapter) Dialect() *dialect.Dialect { return dialect.Default() }

func TestRegistryRoundTrip(t *testing.T) {
	adapter.Register("stub", func(_ *slog.Logger) adapter.Adapter {
		return &stubAdapter{}
	})

	assert.True(t, adapter.IsRegistered("stub"))
	assert.Contains(t, adapter.List(), "stub")

	factory, ok := adapter.Get("stub")
	require.True(t, ok)
	require.NotNil(t, factory)

	a, err := adapter.New(adapter.Config{Type: "stub"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &stubAdapter{}, a)
}

func TestRegistryUnknownType(t *testing.T) {
	_, err := adapter.New(adapter.Config{Type: "oracle"}, nil)
	require.Error(t, err)

	var unknown *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "oracle", unknown.Type)
	assert.Contains(t, err.Error(), "quill.yaml")
}

func TestRegistryEmptyType(t *testing.T) {
	_, err := adapter.New(adapter.Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not specified")
}
