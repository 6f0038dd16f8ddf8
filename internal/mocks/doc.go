// Package mocks provides hand-written test doubles for the store and
// auth interfaces. Each mock exposes function fields to override behavior
// per test and an in-memory default implementation backed by maps.
package mocks
