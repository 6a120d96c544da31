// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: for
// example ErrUnknownReference signals that a write referenced a
// segment, position or person that does not exist. Ownership
// violations are deliberately reported as not-found by the per-repo
// sentinels so the API does not leak which ids exist.
package repository

import (
    "errors"
    "strings"
)

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrUnknownReference is returned when an insert or update refers to
// a row that does not exist (unknown person, position or segment id).
// The write is rejected and nothing is persisted.
var ErrUnknownReference = errors.New("unknown reference")

// isFKViolation reports whether a MySQL error is a foreign key
// constraint failure (errno 1452). Repositories map these onto
// ErrUnknownReference so handlers never leak driver error text.
func isFKViolation(err error) bool {
    return err != nil && strings.Contains(err.Error(), "1452")
}

// isDuplicate reports whether a MySQL error is a duplicate key
// violation (errno 1062).
func isDuplicate(err error) bool {
    return err != nil && strings.Contains(err.Error(), "1062")
}
