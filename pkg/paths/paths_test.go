// Test Type: Unit Test
// Description: Tests for the paths package - directory resolution and
// environment overrides

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/scrub/pkg/paths"
)

func TestNew_CollectionsDirPrecedence(t *testing.T) {
	t.Run("explicit_dir_wins", func(t *testing.T) {
		t.Setenv(paths.EnvCollectionsDir, "/from/env")
		p := paths.New("/explicit")
		assert.Equal(t, "/explicit", p.CollectionsDir())
	})

	t.Run("env_overrides_default", func(t *testing.T) {
		t.Setenv(paths.EnvCollectionsDir, "/from/env")
		p := paths.New("")
		assert.Equal(t, "/from/env", p.CollectionsDir())
	})

	t.Run("default_is_relative_collections", func(t *testing.T) {
		t.Setenv(paths.EnvCollectionsDir, "")
		p := paths.New("")
		assert.Equal(t, paths.CollectionsDirName, p.CollectionsDir())
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/custom/config")
	t.Setenv(paths.EnvCacheDir, "/custom/cache")

	p := paths.New("")
	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/cache", p.CacheDir())
	assert.Equal(t, filepath.Join("/custom/config", "config.toml"), p.ConfigFilePath())
	assert.Equal(t, filepath.Join("/custom/cache", "remote"), p.RemoteCacheDir())
}

func TestCollectionPath(t *testing.T) {
	p := paths.New("/srv/collections")
	assert.Equal(t, filepath.Join("/srv/collections", "linux.yaml"), p.CollectionPath("linux"))
	assert.Equal(t, filepath.Join("/srv/collections", "macos.yaml"), p.CollectionPath("macos"))
}
