package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/knn/vector"
	"gonum.org/v1/plot/vg"
)

func sample() (vector.Points, vector.Point, vector.Points) {
	points := vector.Points{{1, 2}, {2, 3}, {3, 4}, {5, 5}, {8, 8}}
	return points, vector.Point{3.5, 3.5}, vector.Points{{3, 4}, {5, 5}}
}

func tickValues(cfg Config, x bool) []float64 {
	ticks := cfg.YTicks()
	if x {
		ticks = cfg.XTicks()
	}
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = t.Value
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, tickValues(cfg, true))
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7, 8}, tickValues(cfg, false))
	assert.Equal(t, "8", cfg.XTicks()[8].Label)
	assert.InDelta(t, float64(8*vg.Inch)*7/8.5, float64(cfg.Height()), 1e-9)

	cfg.EqualAspect = false
	assert.Equal(t, 6*vg.Inch, cfg.Height())

	cfg.XTickStep = 0
	assert.Empty(t, cfg.XTicks())
}

func TestRender(t *testing.T) {
	points, query, neighbors := sample()
	cfg := DefaultConfig()
	p, err := Render(points, query, neighbors, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Title, p.Title.Text)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 8.5, p.X.Max)
	assert.Equal(t, 1.5, p.Y.Min)
	assert.Equal(t, 8.5, p.Y.Max)
	assert.Len(t, p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max), 9)
	assert.Len(t, p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max), 7)
}

func TestRender_Not2D(t *testing.T) {
	points, _, neighbors := sample()
	_, err := Render(points, vector.Point{1, 2, 3}, neighbors, DefaultConfig())
	assert.ErrorIs(t, err, ErrNot2D)
	_, err = Render(vector.Points{{1, 2, 3}}, vector.Point{1, 2}, nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNot2D)
}

func TestSave(t *testing.T) {
	points, query, neighbors := sample()
	cfg := DefaultConfig()
	p, err := Render(points, query, neighbors, cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	pngURL := filepath.Join(dir, "knn.png")
	require.NoError(t, Save(context.Background(), p, pngURL, cfg))
	data, err := os.ReadFile(pngURL)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	// Overwrite replaces the previous file.
	require.NoError(t, os.WriteFile(pngURL, []byte("stale"), 0o644))
	require.NoError(t, Save(context.Background(), p, pngURL, cfg))
	data, err = os.ReadFile(pngURL)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	svgURL := filepath.Join(dir, "knn.svg")
	require.NoError(t, Save(context.Background(), p, svgURL, cfg))
	data, err = os.ReadFile(svgURL)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestSave_ReplaceFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	points, query, neighbors := sample()
	cfg := DefaultConfig()
	p, err := Render(points, query, neighbors, cfg)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o755))
	pngURL := filepath.Join(dir, "knn.png")
	require.NoError(t, os.WriteFile(pngURL, []byte("stale"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err = Save(context.Background(), p, pngURL, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart: replace")
}

func TestFormat(t *testing.T) {
	format, err := Format("out/knn.PNG")
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	_, err = Format("knn.bmp")
	assert.Error(t, err)
	_, err = Format("knn")
	assert.Error(t, err)
}
