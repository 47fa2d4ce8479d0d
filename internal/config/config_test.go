package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanzav/scribe/internal/model"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Downloads", filepath.Base(cfg.MonitorFolder))
	assert.Equal(t, model.PolicyRename, cfg.DuplicatePolicy)
	assert.Equal(t, "MTE", cfg.CoursePrefix)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
}

func TestLoadRulesKeepConfiguredOrder(t *testing.T) {
	resetViper(t)
	viper.Set("rules", []map[string]any{
		{"pattern": "*a*", "folder": "First"},
		{"pattern": "*b*", "folder": "Second"},
		{"pattern": "*c*", "folder": "Third"},
	})

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Rules, 3)
	assert.Equal(t, "First", cfg.Rules[0].Folder)
	assert.Equal(t, "Second", cfg.Rules[1].Folder)
	assert.Equal(t, "Third", cfg.Rules[2].Folder)
}

func TestLoadUnrecognizedPolicyCorrectsToRename(t *testing.T) {
	resetViper(t)
	viper.Set("duplicate_policy", "replace")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, model.PolicyRename, cfg.DuplicatePolicy)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	cfg := Config{MonitorFolder: dir}
	assert.NoError(t, cfg.Validate())

	cfg = Config{MonitorFolder: filepath.Join(dir, "missing")}
	assert.Error(t, cfg.Validate())

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg = Config{MonitorFolder: file}
	assert.Error(t, cfg.Validate())
}

func TestAIEnabled(t *testing.T) {
	t.Setenv("SCRIBE_TEST_KEY", "sk-test")

	tests := []struct {
		name string
		ai   AI
		want bool
	}{
		{
			name: "fully configured",
			ai:   AI{UseCategory: true, Endpoint: "https://api.openai.com/v1", Model: "gpt-4o-mini", APIKeyEnvVar: "SCRIBE_TEST_KEY"},
			want: true,
		},
		{
			name: "disabled flag",
			ai:   AI{UseCategory: false, Endpoint: "https://api.openai.com/v1", Model: "gpt-4o-mini", APIKeyEnvVar: "SCRIBE_TEST_KEY"},
			want: false,
		},
		{
			name: "missing model",
			ai:   AI{UseCategory: true, Endpoint: "https://api.openai.com/v1", APIKeyEnvVar: "SCRIBE_TEST_KEY"},
			want: false,
		},
		{
			name: "key env var unset",
			ai:   AI{UseCategory: true, Endpoint: "https://api.openai.com/v1", Model: "gpt-4o-mini", APIKeyEnvVar: "SCRIBE_UNSET_KEY"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ai.Enabled())
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Downloads"), ExpandPath("~/Downloads"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/x", ExpandPath("/tmp/x"))
	assert.Equal(t, "", ExpandPath(""))
}
