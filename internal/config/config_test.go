package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mordv/scorebot/internal/logger"
)

func TestApplyDefaults_ZeroOptions(t *testing.T) {
	// Arrange
	opts := Options{}

	// Act
	err := opts.applyDefaults(&envValues{})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, opts.Logger)
	assert.True(t, strings.HasSuffix(opts.MappingsPath, defaultMappingsName))

	fs, ok := opts.Mappings.(*fileSource)
	require.True(t, ok)
	assert.Equal(t, opts.MappingsPath, fs.path)
}

func TestApplyDefaults_PathFromEnvOverride(t *testing.T) {
	// Arrange
	opts := Options{}

	// Act
	err := opts.applyDefaults(&envValues{MappingsFile: "/etc/scorebot/mappings.json"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/etc/scorebot/mappings.json", opts.MappingsPath)
}

func TestApplyDefaults_ExplicitPathOutranksEnv(t *testing.T) {
	// Arrange
	opts := Options{MappingsPath: "/opt/custom.json"}

	// Act
	err := opts.applyDefaults(&envValues{MappingsFile: "/etc/scorebot/mappings.json"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/opt/custom.json", opts.MappingsPath)
}

func TestApplyDefaults_KeepsInjectedSources(t *testing.T) {
	// Arrange
	src := mapSource{}
	log := logger.Nop()
	opts := Options{Mappings: src, Logger: log}

	// Act
	err := opts.applyDefaults(&envValues{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, src, opts.Mappings)
	assert.Same(t, log, opts.Logger)
}

func TestResolve_MappingsFileEndToEnd(t *testing.T) {
	// Arrange
	p := writeMappingsFile(t, `{
		"ROLES": {"A": 1, "B": 2},
		"RANK_EMOJI": {"SS": ":sparkles:"}
	}`)
	environment := validEnv()
	environment["MAPPINGS_FILE"] = p

	// Act
	cfg, err := Resolve(Options{Environment: environment})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 1, "B": 2}, cfg.Roles)
	assert.Equal(t, map[string]string{"SS": ":sparkles:"}, cfg.RankEmoji)
	assert.Empty(t, cfg.ModsDict)
}

func TestResolve_MalformedMappingsFileIsSoft(t *testing.T) {
	// Arrange: the whole file is broken, roles come from the environment.
	p := writeMappingsFile(t, `{ broken`)
	environment := validEnv()
	environment["MAPPINGS_FILE"] = p
	environment["ROLES_JSON"] = `{"A": 1}`

	// Act
	cfg, err := Resolve(Options{Environment: environment})

	// Assert: environment keys still resolve, file-backed keys go empty.
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 1}, cfg.Roles)
	assert.Empty(t, cfg.RankEmoji)
}

func TestResolve_ExplicitMappingsPathOption(t *testing.T) {
	// Arrange
	p := writeMappingsFile(t, `{"MODS_DICT": {"HD": 8}}`)
	environment := validEnv()
	environment["MAPPINGS_FILE"] = "/nonexistent/elsewhere.json"

	// Act
	cfg, err := Resolve(Options{Environment: environment, MappingsPath: p})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"HD": 8}, cfg.ModsDict)
}
