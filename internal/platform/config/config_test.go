package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, int64(16), cfg.WorkerPoolSize)
	assert.Equal(t, 30*time.Second, cfg.OperationTimeout)
	assert.False(t, cfg.AllowOverdraft)
	assert.True(t, cfg.RunMigrations)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("PGSQL_URL", "postgres://economy@localhost/economy")
	t.Setenv("WORKER_POOL_SIZE", "4")
	t.Setenv("OPERATION_TIMEOUT", "250ms")
	t.Setenv("ALLOW_OVERDRAFT", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, int64(4), cfg.WorkerPoolSize)
	assert.Equal(t, 250*time.Millisecond, cfg.OperationTimeout)
	assert.True(t, cfg.AllowOverdraft)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{name: "unknown driver", values: map[string]any{"STORE_DRIVER": "redis"}},
		{name: "postgres without url", values: map[string]any{"STORE_DRIVER": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.values {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestFromViper_FallsBackOnBadValues(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "memory")
	v.Set("OPERATION_TIMEOUT", "soon")
	v.Set("WORKER_POOL_SIZE", 0)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.OperationTimeout)
	assert.Equal(t, int64(16), cfg.WorkerPoolSize)
}
