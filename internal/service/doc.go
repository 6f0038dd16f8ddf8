// Package service provides application-level services for managing users,
// credit cards, restaurants and orders. Services take the authenticated
// identity as an explicit argument and apply the ownership policy before
// touching the stores.
package service
