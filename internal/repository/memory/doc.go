// Package memory holds map-backed implementations of the repository
// interfaces. They mirror the PostgreSQL repositories' error semantics and are
// used by service and handler tests.
package memory
