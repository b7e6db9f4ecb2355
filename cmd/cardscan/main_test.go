package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T) *Main {
	t.Helper()
	m := NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "cardscan.db")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), nil, &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)
		assert.NoError(t, err)
	})

	t.Run("runs on a fresh database", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"runs"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs saved.")
	})

	t.Run("show with unknown run id errors", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"show", "missing"}, &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
