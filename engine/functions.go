package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/knn/vector"
	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once
var registerErr error

// FunctionName returns the SQL scalar function computing distance under m.
func FunctionName(m vector.Metric) (string, error) {
	switch m {
	case vector.Euclidean:
		return "vec_l2", nil
	case vector.Manhattan:
		return "vec_l1", nil
	case vector.Chebyshev:
		return "vec_linf", nil
	case vector.Cosine:
		return "vec_cosine_distance", nil
	}
	return "", fmt.Errorf("engine: %w: %q", vector.ErrUnknownMetric, string(m))
}

// RegisterVectorFunctions registers vec_l2, vec_l1, vec_linf and
// vec_cosine_distance with the driver so they are available
// on new connections opened after this call. Existing open connections do
// not see new functions. Calling it more than once is a no-op.
func RegisterVectorFunctions() error {
	registerOnce.Do(func() {
		for _, m := range []vector.Metric{vector.Euclidean, vector.Manhattan, vector.Chebyshev, vector.Cosine} {
			name, _ := FunctionName(m)
			if registerErr = sqlite.RegisterDeterministicScalarFunction(name, 2, distanceImpl(name, m)); registerErr != nil {
				return
			}
		}
	})
	return registerErr
}

func asPoint(arg driver.Value) (vector.Point, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodePoint(v)
	default:
		return nil, fmt.Errorf("vec: unsupported argument type %T for point; want BLOB", arg)
	}
}

func pointArgs(name string, args []driver.Value) (vector.Point, vector.Point, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := asPoint(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asPoint(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func distanceImpl(name string, m vector.Metric) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		a, b, err := pointArgs(name, args)
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		d, err := m.Distance(a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil
	}
}
