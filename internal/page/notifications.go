package page

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// NotificationsRequest is the specialised PageQuery mode for the
// notifications feed: records that mention DID in their JSON body, were
// not authored by DID, optionally restricted to Collections, ordered
// (rkey DESC, uri DESC).
type NotificationsRequest struct {
	DID         string
	Collections []string
	Page        Args
	MaxLimit    int
}

// decodeNotificationsCursor decodes the simplified "rkey|uri" cursor this
// variant uses instead of the general CursorCodec format.
func decodeNotificationsCursor(raw string) (rkey, uri string, ok bool) {
	if raw == "" {
		return "", "", false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func encodeNotificationsCursor(rkey, uri string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(rkey + "|" + uri))
}

// RunNotifications executes the notifications feed query.
func RunNotifications(ctx context.Context, db record.DB, d dialect.Dialect, req NotificationsRequest) (Result, error) {
	if req.DID == "" {
		return Result{}, errors.New("page: notifications request requires a did")
	}
	resolved := req.Page.Resolve(req.MaxLimit)

	var binds []value.Value
	idx := 1
	bind := func(v value.Value) int {
		binds = append(binds, v)
		i := idx
		idx++
		return i
	}

	didLikeIdx := bind(value.Text(req.DID))
	notDidIdx := bind(value.Text(req.DID))
	sql := fmt.Sprintf(
		"record.json %s '%%' || %s || '%%' %s AND record.did != %s",
		d.LikeOperator(), d.Placeholder(didLikeIdx), d.LikeCollation(), d.Placeholder(notDidIdx),
	)

	if len(req.Collections) > 0 {
		start := idx
		for _, c := range req.Collections {
			bind(value.Text(c))
		}
		sql += fmt.Sprintf(" AND record.collection IN (%s)", d.Placeholders(len(req.Collections), start))
	}

	rkey, uri, cursorOK := decodeNotificationsCursor(resolved.Cursor)
	if cursorOK {
		rkeyLtIdx := bind(value.Text(rkey))
		rkeyEqIdx := bind(value.Text(rkey))
		uriIdx := bind(value.Text(uri))
		sql += fmt.Sprintf(
			" AND (record.rkey < %s OR (record.rkey = %s AND record.uri < %s))",
			d.Placeholder(rkeyLtIdx), d.Placeholder(rkeyEqIdx), d.Placeholder(uriIdx),
		)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM record WHERE %s ORDER BY record.rkey DESC, record.uri DESC LIMIT %s",
		selectColumns(false), sql, d.Placeholder(bind(value.Integer(int64(resolved.Limit+1)))),
	)

	cursorRows, err := db.Query(ctx, query, bindsToAny(binds))
	if err != nil {
		return Result{}, err
	}
	defer cursorRows.Close()
	rows, err := scanRecords(cursorRows, false)
	if err != nil {
		return Result{}, err
	}

	hasMore := len(rows) > resolved.Limit
	if hasMore {
		rows = rows[:resolved.Limit]
	}

	res := Result{Rows: rows, HasNextPage: hasMore, HasPreviousPage: cursorOK}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		c := encodeNotificationsCursor(last.Rkey, last.URI)
		res.NextCursor = &c
	}
	return res, nil
}
