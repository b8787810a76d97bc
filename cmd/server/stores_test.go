package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"backoffice/internal/config"
	apperrors "backoffice/internal/errors"
)

func TestOpenStores_Memory(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}

	st, err := openStores(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)
	defer st.close()

	assert.NotNil(t, st.products)
	assert.NotNil(t, st.orders)
	assert.Nil(t, st.pinger)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[1].Message, "/api/orders")

	_, err = st.orders.FindByID(context.Background(), "any")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "postgres"}}

	st, err := openStores(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, st)
}
