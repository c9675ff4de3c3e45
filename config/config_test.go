package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "accounts", cfg.Root)
	assert.Equal(t, "tfplan.out", cfg.PlanFile)
	assert.Equal(t, "summary.md", cfg.Output)
	assert.True(t, cfg.WarnDrift)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plansum.yaml")
	data := `root: environments
plan_file: plan.tfplan
output: plan-summary.md
history_db: plansum.db
warn_drift: false
parallelism: 4
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "environments", cfg.Root)
	assert.Equal(t, "plan.tfplan", cfg.PlanFile)
	assert.Equal(t, "plan-summary.md", cfg.Output)
	assert.Equal(t, "plansum.db", cfg.HistoryDB)
	assert.False(t, cfg.WarnDrift)
	assert.Equal(t, 4, cfg.Parallelism)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plansum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: envs\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "envs", cfg.Root)
	assert.Equal(t, "tfplan.out", cfg.PlanFile)
	assert.Equal(t, "summary.md", cfg.Output)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plansum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty root", func(c *Config) { c.Root = "" }, true},
		{"empty plan file", func(c *Config) { c.PlanFile = "" }, true},
		{"empty output", func(c *Config) { c.Output = "" }, true},
		{"negative parallelism", func(c *Config) { c.Parallelism = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
