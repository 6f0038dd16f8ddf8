// Package store defines the persistence interfaces for the application and
// the error taxonomy shared by their implementations. Concrete stores live
// in internal/platform/postgres.
package store
