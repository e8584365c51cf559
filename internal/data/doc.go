// Package data implements the persistence layer: a storage gateway owning the
// single SQLite connection and one repository per entity (books, people, loans).
//
// The gateway is explicitly constructed and passed by reference to the
// repositories - there is no package-level shared state. Each repository owns
// the schema and SQL statements for exactly one table; statements are built
// with goqu and executed as single atomic statements through sqlx.
package data
