package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCmd(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.php")
	require.NoError(t, os.WriteFile(file, []byte("<?php\n# note\n$greeting = 'hi';\necho $greeting;\n"), 0o600))

	cmd, stdout := newTestRootCmd(newPreviewCmd())
	cmd.SetArgs([]string{"preview", file, "--scheme", "2", "--log-file", filepath.Join(dir, "phpmin.log")})

	require.NoError(t, cmd.Execute())

	text := stdout.String()
	assert.Contains(t, text, "-# note")
	assert.Contains(t, text, "+$a = 'hi';")
	assert.Contains(t, text, "$greeting")
	assert.NoDirExists(t, filepath.Join(filepath.Dir(dir), "appsminify"))
}

func TestPreviewCmd_RequiresFile(t *testing.T) {
	dir := t.TempDir()

	cmd, _ := newTestRootCmd(newPreviewCmd())
	cmd.SetArgs([]string{"preview", "--log-file", filepath.Join(dir, "phpmin.log")})

	assert.Error(t, cmd.Execute())
}
