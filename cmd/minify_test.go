package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRootCmd(sub *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(sub)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func TestMinifyCmd_RenamesAndExports(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app")
	out := filepath.Join(dir, "min")
	symbols := filepath.Join(dir, "symbols.yaml")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.php"), []byte("<?php\n// greet\nfunction greet($name) { return 'hi ' . $name; }\necho greet('x');\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib", "notes.txt"), []byte("not php\n"), 0o600))

	cmd, stdout := newTestRootCmd(newMinifyCmd())
	cmd.SetArgs([]string{
		"minify", src,
		"--scheme", "2",
		"--output", out,
		"--symbols", symbols,
		"--scope", "run",
		"--log-file", filepath.Join(dir, "phpmin.log"),
	})

	require.NoError(t, cmd.Execute())

	minified, err := os.ReadFile(filepath.Join(out, "index.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php  function fn0($a) { return 'hi ' . $a; }  echo fn0('x'); ", string(minified))

	assert.DirExists(t, filepath.Join(out, "lib"))
	assert.NoFileExists(t, filepath.Join(out, "lib", "notes.txt"))
	assert.FileExists(t, symbols)
	assert.Contains(t, stdout.String(), "Application  contains 2 folders and 2 files :")
}

func TestMinifyCmd_MissingSourceFails(t *testing.T) {
	dir := t.TempDir()

	cmd, _ := newTestRootCmd(newMinifyCmd())
	cmd.SetArgs([]string{
		"minify", filepath.Join(dir, "nope"),
		"--scheme", "1",
		"--output", filepath.Join(dir, "out"),
		"--log-file", filepath.Join(dir, "phpmin.log"),
	})

	assert.Error(t, cmd.Execute())
}

func TestMinifyCmd_TooManyArgs(t *testing.T) {
	dir := t.TempDir()

	cmd, _ := newTestRootCmd(newMinifyCmd())
	cmd.SetArgs([]string{"minify", "a", "b", "--log-file", filepath.Join(dir, "phpmin.log")})

	assert.Error(t, cmd.Execute())
}
