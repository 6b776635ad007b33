package sina_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/sina"
	"github.com/theplant/sina/condition"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := sina.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, sina.Config{}, cfg)
		assert.Nil(t, cfg.Limits())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("SINA_FOLDER_MODE", "true")
		t.Setenv("SINA_INITIAL_FOLDER_SEARCH", "true")
		t.Setenv("SINA_MAX_DEPTH", "3")
		t.Setenv("SINA_MAX_CONDITIONS", "10")

		cfg, err := sina.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.FolderMode)
		assert.True(t, cfg.InitialFolderSearch)
		assert.Equal(t, &condition.ComplexityLimits{MaxDepth: 3, MaxTotalConditions: 10}, cfg.Limits())
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("SINA_FOLDER_MODE", "maybe")
		_, err := sina.LoadConfig()
		require.ErrorContains(t, err, "parse sina config from environment")
	})
}
