package page

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// fakeDB is an in-memory record.DB stand-in for table-driven PageQuery
// tests, mirroring the teacher's core/mock.go approach of a hand-rolled
// driver instead of a real connection.
type fakeDB struct {
	dialectName string
	rows        [][]any // pre-baked rows returned verbatim regardless of the SQL text
	count       int64
	queryErr    error
}

func (f *fakeDB) DialectName() string { return f.dialectName }

func (f *fakeDB) Query(ctx context.Context, query string, binds []any) (record.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeDB) QueryCount(ctx context.Context, query string, binds []any) (int64, error) {
	return f.count, nil
}

func (f *fakeDB) Exec(ctx context.Context, query string, binds []any) error {
	return nil
}

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
		case *string:
			*d = v.(string)
		case **string:
			if v == nil {
				*d = nil
			} else {
				s := v.(string)
				*d = &s
			}
		case *json.RawMessage:
			*d = json.RawMessage(v.(string))
		default:
			return fmt.Errorf("fakeRows: unsupported dest type %T", dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error   { return nil }
