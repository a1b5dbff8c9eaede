// Package errs defines the application error types.
//
// Every error that reaches a client is eventually expressed as an
// *HTTPError carrying a stable machine-readable code, a human-readable
// message, an HTTP status, and optional structured details. The global
// error handler renders it into the standard response envelope, so
// clients always receive the same body shape regardless of where the
// error originated.
package errs
