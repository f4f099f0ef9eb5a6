// Package testutil provides shared test helper utilities.
package testutil

// Ptr returns a pointer to v. Wire types use pointers for optional fields
// (physics scores, pass flags, backend-supplied ETAs); this replaces the
// typed pointer helpers that would otherwise be duplicated across test files.
func Ptr[T any](v T) *T { return &v }
