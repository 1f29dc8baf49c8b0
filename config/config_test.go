package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takeshixx/kleber"
	"github.com/takeshixx/kleber/config"
)

// isolate clears the environment and points the binary and home
// directories at empty temp dirs.
func isolate(t *testing.T) config.Options {
	t.Helper()
	t.Setenv("KLEBER_API_KEY", "")
	t.Setenv("KLEBER_CONFIG", "")
	return config.Options{
		BinaryDir: t.TempDir(),
		HomeDir:   t.TempDir(),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
}

func TestLoad_ExplicitKey(t *testing.T) {
	opts := isolate(t)
	opts.APIKey = "explicit-key"

	// A broken config file must not be touched when a key is given
	writeFile(t, filepath.Join(opts.HomeDir, ".kleberrc"), `{not json`)

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "explicit-key", cfg.APIKey)
	assert.Empty(t, cfg.Path)
}

func TestLoad_EnvKey(t *testing.T) {
	opts := isolate(t)
	t.Setenv("KLEBER_API_KEY", "env-key")
	writeFile(t, filepath.Join(opts.HomeDir, ".kleberrc"), `{"api_key": "file-key"}`)

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoad_ExplicitKeyBeatsEnv(t *testing.T) {
	opts := isolate(t)
	t.Setenv("KLEBER_API_KEY", "env-key")
	opts.APIKey = "explicit-key"

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "explicit-key", cfg.APIKey)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	opts := isolate(t)
	path := filepath.Join(opts.HomeDir, ".kleberrc")
	writeFile(t, path, `{"api_key": "home-key", "unrelated": true}`)

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "home-key", cfg.APIKey)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_CustomConfigFile(t *testing.T) {
	opts := isolate(t)
	writeFile(t, filepath.Join(opts.HomeDir, ".kleberrc"), `{"api_key": "home-key"}`)

	custom := filepath.Join(t.TempDir(), "kleber.json")
	writeFile(t, custom, `{"api_key": "custom-key"}`)
	opts.ConfigFile = custom

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "custom-key", cfg.APIKey)
	assert.Equal(t, custom, cfg.Path)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	opts := isolate(t)
	custom := filepath.Join(t.TempDir(), "rc")
	writeFile(t, custom, `{"api_key": "env-file-key"}`)
	t.Setenv("KLEBER_CONFIG", custom)

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "env-file-key", cfg.APIKey)
}

func TestLoad_BinaryDirConfigFileWins(t *testing.T) {
	opts := isolate(t)
	local := filepath.Join(opts.BinaryDir, ".kleberrc")
	writeFile(t, local, `{"api_key": "local-key"}`)

	custom := filepath.Join(t.TempDir(), "kleber.json")
	writeFile(t, custom, `{"api_key": "custom-key"}`)
	opts.ConfigFile = custom

	cfg, err := config.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "local-key", cfg.APIKey)
	assert.Equal(t, local, cfg.Path)
}

func TestLoad_Errors(t *testing.T) {
	tt := []struct {
		Name    string
		Content *string
		WantErr error
	}{
		{Name: "missing file", Content: nil, WantErr: kleber.ErrConfigUnreadable},
		{Name: "malformed json", Content: ptr(`{"api_key": `), WantErr: kleber.ErrConfigUnreadable},
		{Name: "not an object", Content: ptr(`"just a string"`), WantErr: kleber.ErrConfigUnreadable},
		{Name: "missing field", Content: ptr(`{"token": "abc"}`), WantErr: kleber.ErrCredentialMissing},
		{Name: "empty field", Content: ptr(`{"api_key": ""}`), WantErr: kleber.ErrCredentialMissing},
		{Name: "blank field", Content: ptr(`{"api_key": "   "}`), WantErr: kleber.ErrCredentialMissing},
		{Name: "empty object", Content: ptr(`{}`), WantErr: kleber.ErrCredentialMissing},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			opts := isolate(t)
			path := filepath.Join(opts.HomeDir, ".kleberrc")
			if tc.Content != nil {
				writeFile(t, path, *tc.Content)
			}

			cfg, err := config.Load(opts)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tc.WantErr)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Run("defaults to home", func(t *testing.T) {
		opts := isolate(t)
		assert.Equal(t, filepath.Join(opts.HomeDir, ".kleberrc"), config.ResolvePath(opts))
	})

	t.Run("custom file when no local file", func(t *testing.T) {
		opts := isolate(t)
		opts.ConfigFile = "/some/where/rc.json"
		assert.Equal(t, "/some/where/rc.json", config.ResolvePath(opts))
	})

	t.Run("local directory is not a file", func(t *testing.T) {
		opts := isolate(t)
		require.NoError(t, os.Mkdir(filepath.Join(opts.BinaryDir, ".kleberrc"), 0o700))
		assert.Equal(t, filepath.Join(opts.HomeDir, ".kleberrc"), config.ResolvePath(opts))
	})
}

func ptr(s string) *string {
	return &s
}
