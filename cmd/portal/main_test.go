package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	require.Equal(t, 2, run(nil, stdout, stderr))
	require.Contains(t, stderr.String(), "usage: portal")
	require.Empty(t, stdout.String())
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("PORTAL_API_URL", "http://127.0.0.1:0")
	t.Setenv("STORAGE_DRIVER", "memory")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	require.Equal(t, 2, run([]string{"promote"}, stdout, stderr))
	require.Contains(t, stderr.String(), "commands:")
}
