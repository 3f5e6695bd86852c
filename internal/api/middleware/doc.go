// Package middleware provides the HTTP middleware of the console API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing for the browser console
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - RequestID: ULID request IDs carried in X-Request-ID
//   - AccessLog: One zap line per request, level by status class
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.AccessLog(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
