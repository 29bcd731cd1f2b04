package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigFlag(t *testing.T, value string) {
	t.Helper()

	previous := cfgFile
	cfgFile = value

	t.Cleanup(func() { cfgFile = previous })
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		flag string
		want string
	}{
		{name: "default name", flag: "config.yml", want: "/home/dev/.a2a-bridge/config.yml"},
		{name: "other name", flag: "staging.yml", want: "/home/dev/.a2a-bridge/staging.yml"},
		{name: "relative path", flag: "deploy/bridge.yml", want: "deploy/bridge.yml"},
		{name: "absolute path", flag: "/etc/a2a-bridge/bridge.yml", want: "/etc/a2a-bridge/bridge.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfigFlag(t, tt.flag)
			assert.Equal(t, tt.want, configPath("/home/dev"))
		})
	}
}

func TestWriteConfigSeedsCustomFile(t *testing.T) {
	home := t.TempDir()
	withConfigFlag(t, "staging.yml")

	path := configPath(home)
	require.NoError(t, writeConfig(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	assert.Equal(t, 3000, v.GetInt("server.port"))
	assert.Equal(t, "/mcp", v.GetString("server.path"))
}

func TestWriteConfigKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bridge.yml")
	withConfigFlag(t, path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4100\n"), 0o644))
	require.NoError(t, writeConfig(configPath("/unused")))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	assert.Equal(t, 4100, v.GetInt("server.port"))
}
