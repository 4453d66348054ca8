package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DELIVERY_FEE", "MIN_TOP_UP", "ORDER_SETTLE_AFTER",
		"TRACKING_SIMULATION", "KAFKA_BROKERS", "REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, int64(10000), cfg.DeliveryFee)
	assert.Equal(t, int64(10000), cfg.MinTopUp)
	assert.Equal(t, 10*time.Minute, cfg.OrderSettleAfter)
	assert.False(t, cfg.TrackingSimulation)
	assert.Equal(t, 60*time.Second, cfg.TrackingSimulationDuration)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "8000")
	t.Setenv("TRACKING_SIMULATION", "true")
	t.Setenv("ORDER_SETTLE_AFTER", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("DB_HOST", "db")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, int64(8000), cfg.DeliveryFee)
	assert.True(t, cfg.TrackingSimulation)
	assert.Equal(t, 30*time.Second, cfg.OrderSettleAfter)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Contains(t, cfg.DSN(), "host=db ")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// godotenv never overrides a variable that is already set, even to "".
	t.Setenv("MIN_TOP_UP", "")
	require.NoError(t, os.Unsetenv("MIN_TOP_UP"))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MIN_TOP_UP=25000\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), cfg.MinTopUp)
}

func TestLoadConfig_ReportsEveryBadValue(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "ten")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := LoadConfig(missingEnvFile(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "DELIVERY_FEE")
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}

func TestLoadConfig_RejectsNonPositiveMinimum(t *testing.T) {
	t.Setenv("MIN_TOP_UP", "0")

	_, err := LoadConfig(missingEnvFile(t))
	assert.Error(t, err)
}
