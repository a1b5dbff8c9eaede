// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// authentication (via Clerk), request logging, CORS, rate limiting, panic
// recovery, and the global error funnel that renders every error into the
// standard response envelope.
package middleware
