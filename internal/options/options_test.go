package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Value    int
	Name     string
	LastCall string
}

type validatedConfig struct {
	Value int
}

func (c *validatedConfig) Validate() error {
	if c.Value > 10 {
		return errors.New("value too large")
	}

	return nil
}

func TestNew(t *testing.T) {
	cfg := &testConfig{}

	opt := New(func(c *testConfig) error {
		if c.Value < 0 {
			return errors.New("negative")
		}
		c.Value = 42
		c.LastCall = "value"

		return nil
	})

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 42, cfg.Value)
	require.Equal(t, "value", cfg.LastCall)

	failing := New(func(c *testConfig) error { return errors.New("boom") })
	require.EqualError(t, failing.apply(cfg), "boom")
}

func TestNoError(t *testing.T) {
	cfg := &testConfig{}
	opt := NoError(func(c *testConfig) { c.Name = "segy" })

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "segy", cfg.Name)
}

func TestApply_Order(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.LastCall = "first" }),
		nil,
		NoError(func(c *testConfig) { c.LastCall = "second" }),
	)
	require.NoError(t, err)
	require.Equal(t, "second", cfg.LastCall)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		New(func(c *testConfig) error { return errors.New("stop") }),
		NoError(func(c *testConfig) { c.LastCall = "unreachable" }),
	)
	require.EqualError(t, err, "stop")
	require.Empty(t, cfg.LastCall)
}

func TestApply_Validates(t *testing.T) {
	cfg := &validatedConfig{}

	require.NoError(t, Apply(cfg, NoError(func(c *validatedConfig) { c.Value = 5 })))

	err := Apply(cfg, NoError(func(c *validatedConfig) { c.Value = 11 }))
	require.EqualError(t, err, "value too large")
}
