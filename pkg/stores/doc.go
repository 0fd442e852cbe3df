// Package stores persists the history of integrity check runs.
// It uses SQLite in WAL mode with schema migrations embedded in the binary.
package stores
