// Package repository owns entity storage. It exposes CRUD primitives over
// the user store and hides whether the backing implementation is the
// PostgreSQL pool or the in-memory map.
package repository
