package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/ratelimit"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bucketlist/internal/telemetry"
	"github.com/dmitrijs2005/bucketlist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.DatabaseDriver = config.DriverSQLite
	cfg.DatabaseDSN = testutil.SQLiteDSN()
	cfg.SecretKey = "app-secret"
	cfg.BcryptCost = 4
	return cfg
}

func TestNewApp_RequiresSecret(t *testing.T) {
	cfg := sqliteConfig()
	cfg.SecretKey = ""

	_, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrSigning)
}

func TestNewApp_DBError(t *testing.T) {
	orig := openDB
	defer func() { openDB = orig }()
	openDB = func(context.Context, string, string) (*sql.DB, repomanager.RepositoryManager, error) {
		return nil, nil, errors.New("connection refused")
	}

	_, err := NewApp(context.Background(), sqliteConfig(), &bytes.Buffer{})
	require.ErrorContains(t, err, "connection refused")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), sqliteConfig(), &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, logs.String(), "App stopped")
}

func TestApp_RunBadAddress(t *testing.T) {
	cfg := sqliteConfig()
	cfg.EndpointAddrGRPC = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	require.Error(t, app.Run(context.Background()))
}

func TestNewApp_LimiterError(t *testing.T) {
	orig := newLimiter
	defer func() { newLimiter = orig }()
	var gotURL string
	newLimiter = func(_ context.Context, url string, _, _ int) (*ratelimit.RedisLimiter, error) {
		gotURL = url
		return nil, errors.New("ping redis: refused")
	}

	cfg := sqliteConfig()
	cfg.RedisURL = "redis://cache:6379/0"
	_, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	require.ErrorContains(t, err, "rate limiter init error")
	assert.Equal(t, "redis://cache:6379/0", gotURL)
}

func TestNewApp_NoRedisNoLimiter(t *testing.T) {
	orig := newLimiter
	defer func() { newLimiter = orig }()
	newLimiter = func(context.Context, string, int, int) (*ratelimit.RedisLimiter, error) {
		t.Fatal("limiter must not be created without a redis url")
		return nil, nil
	}

	app, err := NewApp(context.Background(), sqliteConfig(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, app.limiter)
	require.NoError(t, app.db.Close())
}

func TestNewApp_TracingError(t *testing.T) {
	orig := setupTracing
	defer func() { setupTracing = orig }()
	setupTracing = func(context.Context, string, string) (telemetry.ShutdownFunc, error) {
		return nil, errors.New("otlp exporter: boom")
	}

	_, err := NewApp(context.Background(), sqliteConfig(), &bytes.Buffer{})
	require.ErrorContains(t, err, "tracing init error")
}

func TestApp_RunShutsDownTracing(t *testing.T) {
	orig := setupTracing
	defer func() { setupTracing = orig }()
	var endpoint string
	flushed := false
	setupTracing = func(_ context.Context, ep, name string) (telemetry.ShutdownFunc, error) {
		endpoint = ep
		assert.Equal(t, serviceName, name)
		return func(context.Context) error { flushed = true; return nil }, nil
	}

	cfg := sqliteConfig()
	cfg.OtelEndpoint = "http://collector:4318"
	app, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "http://collector:4318", endpoint)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.Run(ctx))
	assert.True(t, flushed)
}
