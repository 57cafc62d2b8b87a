package cursor

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// ErrInvalidCursor is returned by Decode when the cursor fails base64
// decoding or has the wrong number of parts for the given SortSpec
// length.
var ErrInvalidCursor = errors.New("cursor: invalid cursor")

// Decoded is the result of decoding a cursor: one string value per sort
// field, in SortSpec order, plus the owning record's cid.
type Decoded struct {
	FieldValues []string
	CID         string
}

// Encode extracts each field in fieldNames from rec, stringifies it, appends
// rec.CID, joins with "|", and base64url-encodes the result with no
// padding.
func Encode(rec record.Record, fieldNames []string) string {
	parts := make([]string, 0, len(fieldNames)+1)
	for _, name := range fieldNames {
		parts = append(parts, fieldValueString(rec, name))
	}
	parts = append(parts, rec.CID)
	raw := strings.Join(parts, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode reverses Encode. It fails with ErrInvalidCursor if the base64
// decode fails or if the decoded part count does not equal
// numSortFields+1.
func Decode(cursor string, numSortFields int) (Decoded, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return Decoded{}, ErrInvalidCursor
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != numSortFields+1 {
		return Decoded{}, ErrInvalidCursor
	}
	return Decoded{
		FieldValues: parts[:numSortFields],
		CID:         parts[numSortFields],
	}, nil
}

// fieldValueString extracts and stringifies a single sort field's value
// from rec: a table column by name (or a bare string field access), or a
// JSON field looked up by dotted path and stringified as
// string/integer/float/boolean/null.
func fieldValueString(rec record.Record, name string) string {
	switch {
	case field.IsActorHandle(name):
		return rec.ActorHandle
	case field.IsTableColumn(name):
		return tableColumnValue(rec, name)
	default:
		return jsonPathString(rec.JSON, strings.Split(name, "."))
	}
}

func tableColumnValue(rec record.Record, name string) string {
	switch name {
	case "uri":
		return rec.URI
	case "cid":
		return rec.CID
	case "did":
		return rec.DID
	case "collection":
		return rec.Collection
	case "indexed_at":
		return rec.IndexedAt
	case "rkey":
		return rec.Rkey
	default:
		return ""
	}
}
