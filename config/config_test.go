package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davrell/jsonsift/extract"
)

const fullConfig = `
source:
  path: response[*]
fields:
  - personid
  - personBasic.names[*].firstName
derive:
  displayName: 'personid + "!"'
output:
  indent: 4
  compact: true
`

func TestParseFull(t *testing.T) {
	cfg, err := Parse(strings.NewReader(fullConfig))
	require.NoError(t, err)
	assert.Equal(t, "response[*]", cfg.Source.Path)
	assert.Equal(t, []string{"personid", "personBasic.names[*].firstName"}, cfg.Fields)
	assert.Equal(t, map[string]string{"displayName": `personid + "!"`}, cfg.Derive)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.True(t, cfg.Output.Compact)
}

func TestParseEmptyDocumentGivesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("fields: [id]\n"))
	require.NoError(t, err)
	assert.Equal(t, extract.ArrayMarker, cfg.Source.Path)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, []string{"id"}, cfg.Fields)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("sources:\n  path: a[*]\n"))
	require.Error(t, err)
}

func TestParseInvalidPath(t *testing.T) {
	_, err := Parse(strings.NewReader("source:\n  path: response\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrMissingArrayMarker))
}

func TestParseInvalidFieldSpec(t *testing.T) {
	_, err := Parse(strings.NewReader("fields: ['a..b']\n"))
	require.Error(t, err)
}

func TestValidateNoSource(t *testing.T) {
	cfg := &Config{}
	assert.True(t, errors.Is(cfg.Validate(), ErrNoSource))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "response[*]", cfg.Source.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
