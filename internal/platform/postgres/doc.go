// Package postgres implements the store interfaces against PostgreSQL,
// accessed through database/sql over the pgx stdlib driver. Relation
// delete policies (cascade, protect, set-null) are enforced here in
// application SQL rather than left to the schema alone.
package postgres
