package sqlindex

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/knn/engine"
	"github.com/viant/knn/index"
	"github.com/viant/knn/vector"
)

// Index is a kNN index backed by an in-memory SQLite database.
type Index struct {
	metric   vector.Metric
	function string
	db       *sql.DB
	dim      int
	count    int
}

// New creates an index; an empty metric means Euclidean.
func New(metric vector.Metric) *Index {
	if metric == "" {
		metric = vector.Euclidean
	}
	return &Index{metric: metric}
}

// Build stores the points; see BuildContext.
func (i *Index) Build(points vector.Points) error {
	return i.BuildContext(context.Background(), points)
}

// BuildContext opens a fresh in-memory database and inserts every point
// with its slice position as idx. A previously built database is closed.
func (i *Index) BuildContext(ctx context.Context, points vector.Points) error {
	function, err := engine.FunctionName(i.metric)
	if err != nil {
		return fmt.Errorf("sqlindex: %w: %v", index.ErrUnsupportedMetric, err)
	}
	if err := points.Validate(); err != nil {
		return fmt.Errorf("sqlindex: %w", err)
	}
	if err := engine.RegisterVectorFunctions(); err != nil {
		return fmt.Errorf("sqlindex: register functions: %w", err)
	}
	db, err := engine.OpenMemory()
	if err != nil {
		return fmt.Errorf("sqlindex: open: %w", err)
	}
	if err := load(ctx, db, points); err != nil {
		_ = db.Close()
		return fmt.Errorf("sqlindex: load: %w", err)
	}
	if err := i.Close(); err != nil {
		_ = db.Close()
		return err
	}
	i.db = db
	i.function = function
	i.dim = points.Dim()
	i.count = len(points)
	return nil
}

func load(ctx context.Context, db *sql.DB, points vector.Points) error {
	if err := EnsureSchema(ctx, db); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points(idx, point) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for j, p := range points {
		if _, err := stmt.ExecContext(ctx, j, vector.EncodePoint(p)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Len returns the number of indexed points.
func (i *Index) Len() int { return i.count }

// Query runs a kNN search; see QueryContext.
func (i *Index) Query(query vector.Point, k int) ([]index.Neighbor, error) {
	return i.QueryContext(context.Background(), query, k)
}

// QueryContext orders all rows by the metric function and returns the
// first k, ties by idx.
func (i *Index) QueryContext(ctx context.Context, query vector.Point, k int) ([]index.Neighbor, error) {
	if i.db == nil {
		return nil, fmt.Errorf("sqlindex: %w", index.ErrNotBuilt)
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("sqlindex: %w: query has %d coordinates, want %d", index.ErrDimension, len(query), i.dim)
	}
	if err := index.CheckK(k, i.count); err != nil {
		return nil, fmt.Errorf("sqlindex: %w", err)
	}
	// function comes from engine.FunctionName, never from caller input.
	stmt := fmt.Sprintf(`SELECT idx, %s(point, ?) AS dist FROM points ORDER BY dist, idx LIMIT ?`, i.function)
	rows, err := i.db.QueryContext(ctx, stmt, vector.EncodePoint(query), k)
	if err != nil {
		return nil, fmt.Errorf("sqlindex: query: %w", err)
	}
	defer rows.Close()

	out := make([]index.Neighbor, 0, k)
	for rows.Next() {
		var n index.Neighbor
		if err := rows.Scan(&n.Index, &n.Distance); err != nil {
			return nil, fmt.Errorf("sqlindex: scan: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlindex: query: %w", err)
	}
	return out, nil
}

// Close releases the database.
func (i *Index) Close() error {
	if i.db == nil {
		return nil
	}
	err := i.db.Close()
	i.db = nil
	return err
}

var _ index.Index = (*Index)(nil)
