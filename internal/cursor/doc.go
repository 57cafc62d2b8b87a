// Package cursor implements the opaque pagination cursor: a base64url
// encoding of the sort-key tuple of the page's last row plus its cid.
// Encoding and decoding are the only place in the engine that knows the
// wire format; callers treat cursors as opaque strings.
//
// Lexical ordering caveat: comparisons on the decoded cursor values are
// always lexical (string) comparisons when the underlying field is a JSON
// path, since JSON values are rendered to their cursor string form before
// binding. This is correct only because the same
// stringification rules (Encode) are used on both the encode side and the
// predicate-bind side — see internal/predicate, which binds decoded
// cursor fields as text regardless of the field's logical type. Fields
// whose lexical and semantic ordering diverge (e.g. unpadded integers
// "9" vs "10") are correct here only because both ends use the identical
// rendering; this package does not attempt to "fix" that by zero-padding
// or similar, since the record's own sort order (produced by the same
// dialect's ORDER BY) is the source of truth the cursor must match.
package cursor
