package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetsCmd_DefaultTargets(t *testing.T) {
	// Point at a config path that does not exist so defaults apply.
	originalConfig := flagConfig
	flagConfig = filepath.Join(t.TempDir(), "config.toml")
	defer func() { flagConfig = originalConfig }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"targets"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TMPRSS2")
	assert.Contains(t, out, "ACE2")
	assert.Contains(t, out, "FURIN  (misgrounded texts: pace, Fur)")
}

func TestTargetsCmd_ConfiguredTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("targets = [\"BRD4\"]\n"), 0600))

	originalConfig := flagConfig
	flagConfig = path
	defer func() { flagConfig = originalConfig }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"targets"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "BRD4")
}
