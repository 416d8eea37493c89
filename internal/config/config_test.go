package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestEVMVersionSuccessAndFailure(t *testing.T) {
	s := Default()
	Ingest(&s, map[string]interface{}{"evm": "cancun"}, nil)
	assert.Equal(t, "cancun", s.EVMVersion)

	Ingest(&s, map[string]interface{}{"evm": "not-a-real-fork"}, nil)
	assert.Equal(t, "cancun", s.EVMVersion, "unparsable value must be ignored, not applied")
}

func TestIngestRevertStringsDefaultsOnFailure(t *testing.T) {
	s := Default()
	Ingest(&s, map[string]interface{}{"revertStrings": "debug"}, nil)
	assert.Equal(t, RevertStringsDebug, s.RevertStrings)

	Ingest(&s, map[string]interface{}{"revertStrings": "garbage"}, nil)
	assert.Equal(t, RevertStringsDefault, s.RevertStrings)
}

func TestIngestRemappingAppends(t *testing.T) {
	s := Default()
	Ingest(&s, map[string]interface{}{"remapping": []interface{}{"a=b"}}, nil)
	Ingest(&s, map[string]interface{}{"remapping": []interface{}{"c=d"}}, nil)
	require.Len(t, s.Remappings, 2)
	assert.Equal(t, Remapping{Prefix: "a", Target: "b"}, s.Remappings[0])
	assert.Equal(t, Remapping{Prefix: "c", Target: "d"}, s.Remappings[1])
}

func TestIngestModelCheckerTimeoutReadsCorrectKey(t *testing.T) {
	s := Default()
	Ingest(&s, map[string]interface{}{
		"model-checker-targets": "default",
		"model-checker-timeout": float64(5000),
	}, nil)
	assert.Equal(t, "default", s.ModelChecker.Targets)
	assert.Equal(t, uint64(5000), s.ModelChecker.TimeoutMS)
}

func TestParseRemapping(t *testing.T) {
	r, ok := ParseRemapping("context:prefix=/target/path")
	require.True(t, ok)
	assert.Equal(t, Remapping{Context: "context", Prefix: "prefix", Target: "/target/path"}, r)

	_, ok = ParseRemapping("no-equals-sign")
	assert.False(t, ok)
}

func TestLoadDefaultsFileMissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	defaults, err := LoadDefaultsFile(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &FileDefaults{}, defaults)
}

func TestSaveAndLoadDefaultsFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := &FileDefaults{EVMVersion: "paris", Remapping: []string{"a=b"}}
	require.NoError(t, SaveDefaultsFile(original, path))

	loaded, err := LoadDefaultsFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestApplyFileDefaultsUsesIngest(t *testing.T) {
	s := Default()
	ApplyFileDefaults(&s, &FileDefaults{EVMVersion: "istanbul"})
	assert.Equal(t, "istanbul", s.EVMVersion)
}
