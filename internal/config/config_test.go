package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "memory", cfg.Events.Backend)
	assert.Nil(t, cfg.Timezone.ClientOffsetHours, "unset offset stays nil")
}

func TestLoad_ZeroOffsetIsExplicit(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[timezone]\nclient_offset_hours = 0\n"))
	require.NoError(t, err)

	// Явный ноль (UTC) отличим от незаданного смещения
	require.NotNil(t, cfg.Timezone.ClientOffsetHours)
	assert.Equal(t, 0, *cfg.Timezone.ClientOffsetHours)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}
