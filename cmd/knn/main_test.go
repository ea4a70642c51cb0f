package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	URL := filepath.Join(t.TempDir(), "knn.png")

	require.NoError(t, run(context.Background(), out, URL, zerolog.New(logs)))
	assert.Equal(t, "Query point: [3.5 3.5]\n"+
		"Nearest neighbors: [3 4] (distance 0.7071), [5 5] (distance 2.1213)\n", out.String())
	assert.Contains(t, logs.String(), "chart written")

	info, err := os.Stat(URL)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRun_BadChartURL(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "knn.bmp"), zerolog.Nop())
	assert.Error(t, err)
}
