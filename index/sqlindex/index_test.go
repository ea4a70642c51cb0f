package sqlindex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/knn/engine"
	"github.com/viant/knn/index"
	"github.com/viant/knn/index/indextest"
	"github.com/viant/knn/index/sqlindex"
	"github.com/viant/knn/vector"
)

func TestIndex_Conformance(t *testing.T) {
	indextest.Run(t, func(t *testing.T, metric vector.Metric) index.Index {
		idx := sqlindex.New(metric)
		t.Cleanup(func() { _ = idx.Close() })
		return idx
	}, indextest.Options{
		Metrics: []vector.Metric{vector.Euclidean, vector.Manhattan, vector.Chebyshev, vector.Cosine},
	})
}

func TestIndex_Rebuild(t *testing.T) {
	idx := sqlindex.New(vector.Euclidean)
	defer idx.Close()
	require.NoError(t, idx.Build(indextest.Sample()))
	require.NoError(t, idx.BuildContext(context.Background(), vector.Points{{0, 0}, {10, 10}}))
	assert.Equal(t, 2, idx.Len())
	actual, err := idx.Query(vector.Point{9, 9}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, actual[0].Index)
}

func TestIndex_UnknownMetric(t *testing.T) {
	err := sqlindex.New(vector.Metric("hamming")).Build(indextest.Sample())
	assert.ErrorIs(t, err, index.ErrUnsupportedMetric)
}

func TestIndex_CloseTwice(t *testing.T) {
	idx := sqlindex.New("")
	require.NoError(t, idx.Build(indextest.Sample()))
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())
	_, err := idx.Query(vector.Point{1, 1}, 1)
	assert.ErrorIs(t, err, index.ErrNotBuilt)
}

// TestEnsureSchema verifies the points table accepts rows on a fresh
// in-memory database.
func TestEnsureSchema(t *testing.T) {
	db, err := engine.OpenMemory()
	if err != nil {
		t.Fatalf("engine.OpenMemory failed: %v", err)
	}
	defer db.Close()

	if err := sqlindex.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO points(idx, point) VALUES(0, X'')`); err != nil {
		t.Fatalf("insert into points failed: %v", err)
	}
}
