package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	limit int
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.limit = 5 }),
		New(func(c *testConfig) error {
			c.limit *= 2
			return nil
		}),
	)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.limit)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}
	boom := errors.New("boom")

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.limit = 1 }),
		New(func(*testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.limit = 99 }),
	)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, cfg.limit)
}
