package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcelang/config"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.src")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFileCleanProgramExitsZero(t *testing.T) {
	path := writeSource(t, `
		int x = 2 + 3;
		print(x);
	`)
	assert.Equal(t, 0, runFile(path, config.Default()))
}

func TestRunFileParseErrorExits65(t *testing.T) {
	path := writeSource(t, `int x = ;`)
	assert.Equal(t, exitDataErr, runFile(path, config.Default()))
}

func TestRunFileTypeErrorExits65(t *testing.T) {
	path := writeSource(t, `int x = "not an int";`)
	assert.Equal(t, exitDataErr, runFile(path, config.Default()))
}

func TestRunFileRuntimeErrorExits70(t *testing.T) {
	path := writeSource(t, `
		int x = 1;
		int y = 0;
		print(x / y);
	`)
	assert.Equal(t, exitSoftErr, runFile(path, config.Default()))
}

func TestRunFileMissingFileReturnsNonzero(t *testing.T) {
	assert.NotEqual(t, 0, runFile(filepath.Join(t.TempDir(), "missing.src"), config.Default()))
}

func TestRunFileRecursionBeyondMaxCallDepthExits70(t *testing.T) {
	path := writeSource(t, `
		int loop(int n) {
			return loop(n + 1);
		}
		print(loop(0));
	`)
	cfg := config.Default()
	cfg.MaxCallDepth = 10
	assert.Equal(t, exitSoftErr, runFile(path, cfg))
}

func TestRunFileBoundedRecursionExitsZero(t *testing.T) {
	path := writeSource(t, `
		int fact(int n) {
			return n <= 1 ? 1 : n * fact(n - 1);
		}
		print(fact(5));
	`)
	assert.Equal(t, 0, runFile(path, config.Default()))
}
