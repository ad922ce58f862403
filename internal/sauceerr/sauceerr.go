// Package sauceerr defines the sentinel error taxonomy shared by every
// core layer, so the record codec, the binary layer, and the public
// package can all return (and callers can all compare against) the same
// error values without an import cycle back to the public package.
package sauceerr

import "errors"

var (
	// ErrNoSauce means the buffer/file has no SAUCE record at all. This
	// is an expected condition, not a malformed one.
	ErrNoSauce = errors.New("sauce: no SAUCE record found")

	// ErrNoComments means a record's comment_lines pointed at a comment
	// block that a lookup couldn't confirm. Tolerant callers coerce this
	// to an empty comment list rather than failing.
	ErrNoComments = errors.New("sauce: no comment block found")

	// ErrInvalidSauce means a record is present but structurally broken
	// (unparseable version, or the all-zero empty-record sentinel).
	ErrInvalidSauce = errors.New("sauce: invalid SAUCE record")

	// ErrInvalidLength means a precondition was violated on a raw
	// buffer-splicing helper (e.g. writing a field whose replacement
	// bytes are the wrong size for the field, or would extend the
	// buffer).
	ErrInvalidLength = errors.New("sauce: invalid length for operation")
)
