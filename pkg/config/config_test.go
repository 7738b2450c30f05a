package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("environment only", func(t *testing.T) {
		t.Parallel()

		site, err := config.Load(config.WithEnvironment(map[string]string{
			"SITE_VIRTUAL_PATH":    "/shop",
			"SITE_PHYSICAL_PATH":   "sites/shop",
			"SITE_STATIC_PREFIXES": "static,img",
			"SITE_DEBUG":           "true",
		}))
		require.NoError(t, err)
		require.Equal(t, config.Site{
			VirtualPath:    "/shop",
			PhysicalPath:   "sites/shop",
			StaticPrefixes: []string{"static", "img"},
			Debug:          true,
		}, site)
	})

	t.Run("file then environment", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("virtual_path: /blog\nphysical_path: sites/blog\nstatic_prefixes: [assets]\n"), 0o600))

		site, err := config.Load(
			config.WithFile(path),
			config.WithEnvironment(map[string]string{"SITE_VIRTUAL_PATH": "/news"}),
		)
		require.NoError(t, err)
		require.Equal(t, "/news", site.VirtualPath)
		require.Equal(t, "sites/blog", site.PhysicalPath)
		require.Equal(t, []string{"assets"}, site.StaticPrefixes)
	})

	t.Run("custom prefix", func(t *testing.T) {
		t.Parallel()

		site, err := config.Load(
			config.WithEnvPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_VIRTUAL_PATH": "/x", "SITE_VIRTUAL_PATH": "/y"}),
		)
		require.NoError(t, err)
		require.Equal(t, "/x", site.VirtualPath)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.WithFile(filepath.Join(t.TempDir(), "nope.yaml")), config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrReadFile)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("static_prefixes: {"), 0o600))

		_, err := config.Load(config.WithFile(path), config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrParseFile)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.WithEnvironment(map[string]string{"SITE_DEBUG": "maybe"}))
		require.ErrorIs(t, err, config.ErrParseEnv)
	})
}
