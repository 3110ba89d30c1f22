// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX so they work with
// either a database connection or an open transaction, and map driver
// errors to the store error taxonomy.
package postgres
