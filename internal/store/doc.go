// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing ownership and cascade rules to
// remain independent of specific database technologies.
//
// Stores return the sentinel errors declared here (ErrNotFound, ErrDuplicate
// and their entity-specific variants) so that callers can classify failures
// with errors.Is.
package store
