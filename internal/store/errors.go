// Sentinel errors shared by both store implementations. Handlers
// translate them into HTTP statuses; the ticket updater additionally
// keys its reduced-payload retry on ErrUnknownColumn.
package store

import "errors"

// ErrNotFound is returned when no row matches the given id.
var ErrNotFound = errors.New("not found")

// ErrDuplicate signals a uniqueness violation on a natural key
// (patrimônio, username, sector name). Handlers map it to 409.
var ErrDuplicate = errors.New("duplicate")

// ErrUnknownColumn is returned when the backing schema lacks a column
// named in a patch. The ticket updater treats it as "optional
// timestamp/duration columns missing" and retries once with a
// status-only patch.
var ErrUnknownColumn = errors.New("unknown column")

// ErrInsufficientStock is returned when an issuance would drive a
// product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")
