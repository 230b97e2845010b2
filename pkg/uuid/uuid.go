// Copyright (c) 2026 Litho Press. All rights reserved.

// Package uuid wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is used as the primary key type across all Litho tables. Because it is
// time-sortable, it ensures clustered-index friendliness in PostgreSQL,
// preventing the index fragmentation common with random UUIDv4.
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// This is acceptable as OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}
