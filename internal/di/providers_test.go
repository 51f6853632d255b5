package di

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalrepo "TechAnalyst/internal/repository"
	icache "TechAnalyst/internal/service/cache"
	"TechAnalyst/pkg/config"
	applogger "TechAnalyst/pkg/logger"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Store.Backend = "memory"
	cfg.Cache.Backend = "memory"
	cfg.Log.Level = "error"
	return cfg
}

func TestProvidersWithoutInfrastructure(t *testing.T) {
	cfg := memoryConfig()

	producer, err := ProvideKafkaProducer(cfg)
	require.NoError(t, err)
	assert.Nil(t, producer)

	_, ok := ProvideReportPublisher(cfg, producer).(internalrepo.NoopReportPublisher)
	assert.True(t, ok)

	backend, err := ProvideBarBackend(cfg, applogger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "memory", backend.Name)
	assert.Nil(t, backend.Closer)
	_, ok = backend.Repo.(*internalrepo.MemoryBarStore)
	assert.True(t, ok)

	cfg.Cache.TTL = time.Minute
	bc, err := ProvideBytesCache(cfg)
	require.NoError(t, err)
	ttl, ok := bc.(*icache.TTLCache)
	require.True(t, ok)
	closer, ok := bc.(io.Closer)
	require.True(t, ok, "the janitor must be stoppable on shutdown")
	assert.NoError(t, closer.Close())
	assert.Equal(t, 0, ttl.Len())

	_, err = ProvideEngine(cfg)
	require.NoError(t, err)
}

func TestProvideEngineRejectsBadWeights(t *testing.T) {
	cfg := memoryConfig()
	cfg.Analysis.Weights = map[string]float64{"astrology": 1}
	_, err := ProvideEngine(cfg)
	assert.Error(t, err)
}
