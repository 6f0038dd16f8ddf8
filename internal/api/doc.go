// Package api contains the HTTP handlers, request/response models and
// error mapping for the REST surface. Handlers authenticate through the
// middleware package, delegate to the service layer and translate service
// errors into status codes with sanitized messages.
package api
