package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.yaml", "name: good\ntemplate: hi\ntool_choice:\n  type: one_or_more\n")
	bad := write(t, dir, "bad.json", `{"name":"bad","tool_choice":{"type":"specific_function","function_name":""}}`)

	var out bytes.Buffer
	require.NoError(t, runValidate(&out, []string{good}, false))
	assert.Contains(t, out.String(), "good.yaml (one_or_more)")

	out.Reset()
	err := runValidate(&out, []string{good, bad}, false)
	assert.EqualError(t, err, "1 of 2 prompt files failed validation")
	assert.Contains(t, out.String(), "tool_choice.function_name")
	assert.Contains(t, out.String(), "[invalid_value]")
}

func TestRunValidateStrict(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "extra.json", `{"name":"x","tool_choice":{"type":"none","why":"quiet"}}`)

	var out bytes.Buffer
	require.NoError(t, runValidate(&out, []string{path}, false))

	out.Reset()
	require.Error(t, runValidate(&out, []string{path}, true))
	assert.Contains(t, out.String(), "[unrecognized_field]")
}

func TestRunValidateUnreadable(t *testing.T) {
	var out bytes.Buffer
	err := runValidate(&out, []string{filepath.Join(t.TempDir(), "missing.yaml")}, false)
	require.Error(t, err)
	assert.Contains(t, out.String(), "missing.yaml")
}
