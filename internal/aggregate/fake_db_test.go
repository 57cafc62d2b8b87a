package aggregate

import (
	"context"
	"fmt"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

type fakeDB struct {
	rows [][]any // each row is (group values..., count)
}

func (f *fakeDB) DialectName() string { return "sqlite" }

func (f *fakeDB) Query(ctx context.Context, query string, binds []any) (record.Rows, error) {
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeDB) QueryCount(ctx context.Context, query string, binds []any) (int64, error) {
	return 0, nil
}

func (f *fakeDB) Exec(ctx context.Context, query string, binds []any) error { return nil }

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool { return r.i < len(r.data) }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i]
	r.i++
	if len(row) != len(dest) {
		return fmt.Errorf("fakeRows: column count mismatch: row has %d, dest has %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *any:
			*d = v
		case *int64:
			*d = v.(int64)
		default:
			return fmt.Errorf("fakeRows: unsupported dest type %T", dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error   { return nil }
