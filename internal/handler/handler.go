// Package handler is the HTTP layer: the first entry point for business
// logic after the router.
//
// Handlers validate request payloads against declarative schemas from the
// validation package, call the appropriate service, and hand the result to
// the response package, which wraps it in the standard envelope.
package handler
