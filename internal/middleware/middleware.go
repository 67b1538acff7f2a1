// Package middleware stores global and route-specific middleware.
//
// Global middleware handles cross-cutting concerns such as request IDs,
// request logging, metrics, CORS, rate limiting and panic recovery.
// Route middleware carries the pre-handler hooks that run after body
// validation and before the route handler.
package middleware
