package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that earlier configs take
// precedence and later ones only fill gaps.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App: App{TokenSignKey: "from-first"},
		},
		&StructuredConfig{
			App:    App{TokenSignKey: "from-second", TokenIssuer: "issuer-second"},
			Server: Server{HTTPAddress: "localhost:9090"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-first", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer-second", cfg.App.TokenIssuer)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
}

// TestWithDefaults_FillsOnlyEmptyFields verifies that defaults sit at the
// bottom of the merge order.
func TestWithDefaults_FillsOnlyEmptyFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{HTTPAddress: "0.0.0.0:9999"},
	})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	// explicit value survives
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)

	// gaps are filled with defaults
	assert.Equal(t, "mess-manager", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 5*time.Minute, cfg.App.StalenessWindow)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Minute, cfg.Workers.RefreshInterval)
}
