package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/quill/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/quill/pkg/dialects/sqlite"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleConfig = `
target: dev
table_prefix: app_
output: json
targets:
  dev:
    type: sqlite
    path: ./dev.db
  prod:
    type: postgres
    host: db.internal
    port: 5432
    database: app
    user: quill
    password: ${QUILL_TEST_DB_PASSWORD}
`

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Target)
	assert.Equal(t, "app_", cfg.TablePrefix)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, filepath.Dir(path), cfg.ProjectRoot)

	target, err := cfg.CurrentTarget()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", target.Type)
	assert.Equal(t, "./dev.db", target.Path)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("QUILL_TEST_DB_PASSWORD", "s3cret")
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Targets["prod"].Password)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("QUILL_OUTPUT", "csv")
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	t.Setenv("QUILL_OUTPUT", "csv")
	path := writeConfig(t, sampleConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "table", "")
	flags.String("table-prefix", "", "")
	require.NoError(t, flags.Parse([]string{"--output=md", "--table-prefix=tenant_"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "md", cfg.Output)
	assert.Equal(t, "tenant_", cfg.TablePrefix)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "table", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "targets:\n  default:\n    type: sqlite\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestValidateOutputFormat(t *testing.T) {
	path := writeConfig(t, "output: xml\n")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestValidateTargetType(t *testing.T) {
	_, err := Load(writeConfig(t, "targets:\n  dev:\n    host: x\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type is required")

	_, err = Load(writeConfig(t, "targets:\n  dev:\n    type: oracle\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestCurrentTargetMissing(t *testing.T) {
	cfg := &Config{Target: "staging"}
	_, err := cfg.CurrentTarget()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `target "staging" not found`)
}
