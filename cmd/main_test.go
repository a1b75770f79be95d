//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in a fresh temp dir with flag variables
// reset to their defaults.
func runCLI(t *testing.T, files map[string]string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	classifyExplain, classifyFold = false, false
	batchInput, batchOutput, batchColumn, batchFormat = "", "", "", ""
	batchColumnIndex, batchConcurrency = -1, 0
	batchNoHeader, batchExplain, batchFold = false, false, false
	termsList, termsValidate = "suffixes", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeAll[T any](t *testing.T, s string) []T {
	t.Helper()
	var out []T
	dec := json.NewDecoder(bytes.NewBufferString(s))
	for dec.More() {
		var v T
		require.NoError(t, dec.Decode(&v))
		out = append(out, v)
	}
	return out
}
