package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	appconfig "github.com/GautamArjun/packrat-demo/internal/config"
	"github.com/GautamArjun/packrat-demo/internal/conversation"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

func TestBuildRedisClientDisabledWithoutAddr(t *testing.T) {
	client, err := BuildRedisClient(context.Background(), &appconfig.Config{}, logging.Discard(), true)
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = BuildRedisClient(context.Background(), nil, nil, true)
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestBuildRedisClientVerifiesPing(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr(), StartupRetryMaxElapsed: time.Second}

	client, err := BuildRedisClient(context.Background(), cfg, logging.Discard(), true)
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	store := BuildTranscriptStore(client, cfg)
	require.NotNil(t, store)
	require.NoError(t, store.Append(context.Background(), "s1", conversation.Message{ID: "m1", Content: "hi"}))
	msgs, err := store.List(context.Background(), "s1", 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestBuildRedisClientGivesUpAfterRetries(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := &appconfig.Config{RedisAddr: addr, StartupRetryMaxElapsed: 300 * time.Millisecond}
	client, err := BuildRedisClient(context.Background(), cfg, logging.Discard(), true)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestBuildTranscriptStoreWithoutRedis(t *testing.T) {
	assert.Nil(t, BuildTranscriptStore(nil, &appconfig.Config{}))
}

func TestBuildCatalog(t *testing.T) {
	cat, err := BuildCatalog(&appconfig.Config{
		SizeSmallMaxUnits:  10,
		SizeMediumMaxUnits: 20,
		SizeLargeMaxUnits:  30,
		VolumeSafetyBuffer: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "small", cat.TierForVolumeUnits(10).Name)
	assert.Equal(t, "medium", cat.TierForVolumeUnits(11).Name)

	_, err = BuildCatalog(&appconfig.Config{
		SizeSmallMaxUnits:  30,
		SizeMediumMaxUnits: 20,
		SizeLargeMaxUnits:  40,
		VolumeSafetyBuffer: 1.2,
	})
	assert.ErrorIs(t, err, catalog.ErrThresholdOrder)
}

func TestBuildRegistryUsesConfiguredPacing(t *testing.T) {
	cfg := &appconfig.Config{TypingDelayScale: 0, SessionIdleTimeout: time.Minute}
	reg := BuildRegistry(cfg, nil, nil, nil, logging.Discard())

	sess := reg.Create()
	res, err := sess.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, conversation.StateReadyToStart, res.State)
	assert.Equal(t, 0, reg.Sweep())
}
