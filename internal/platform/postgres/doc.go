// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the internal/store package. Queries are built with
// squirrel and scanned with sqlx into row structs; back-reference lists live
// in UUID[] columns encoded through lib/pq arrays. The schema is managed by
// goose migrations embedded in this package.
package postgres
