// Package repository holds the persistence interfaces for each entity and
// their gorm implementations. Handlers and services depend on the interfaces
// only, so tests can swap in in-memory fakes.
package repository

import "errors"

// ErrNotFound is returned when an id-qualified operation targets a missing
// row. Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when registering a username that is
// already taken. Handlers translate it into an HTTP 409.
var ErrDuplicateUsername = errors.New("username already exists")
