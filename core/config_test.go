package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliveiracleidson/go-redlock/core"
)

func TestNewLockConfig_WithDefaults(t *testing.T) {
	cfg := core.NewLockConfig()

	assert.Equal(t, int64(10_000), cfg.TTLMillis)
	assert.Equal(t, 3, cfg.RetryTimes)
	assert.Equal(t, int64(200), cfg.RetryDelayMillis)
	assert.Equal(t, core.DefaultClockDriftFactor, cfg.ClockDriftFactor)
}

func TestLockConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := core.NewLockConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid config returns errors", func(t *testing.T) {
		cfg := &core.LockConfig{TTLMillis: -1, RetryTimes: -1, RetryDelayMillis: -1, ClockDriftFactor: -1}
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "TTLMillis must be > 0")
		assert.Contains(t, err.Error(), "RetryTimes must be >= 0")
		assert.Contains(t, err.Error(), "RetryDelayMillis must be >= 0")
		assert.Contains(t, err.Error(), "ClockDriftFactor must be >= 0")
	})
}

func TestLockConfig_FluentSetters(t *testing.T) {
	cfg := core.NewLockConfig().
		SetTTLMillis(5000).
		SetRetryTimes(10).
		SetRetryDelayMillis(50).
		SetClockDriftFactor(0.02)

	assert.Equal(t, int64(5000), cfg.TTLMillis)
	assert.Equal(t, 10, cfg.RetryTimes)
	assert.Equal(t, int64(50), cfg.RetryDelayMillis)
	assert.Equal(t, 0.02, cfg.ClockDriftFactor)
}

func TestQuorum(t *testing.T) {
	cases := []struct {
		n     int
		quorum int
	}{
		{3, 2},
		{5, 3},
		{7, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.quorum, core.Quorum(c.n))
	}
}
