// Package server provides HTTP routing, middleware, and the long-running HTTP server for the web front-end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers; the first middleware added is the outermost.
//
// The [BasicRouter] implementation registers method patterns ("GET /favorites") on an [http.ServeMux], so
// requests with an unsupported method are answered with 405 by the mux itself.
//
// # Middleware
//
//   - [RequestID] : assigns or propagates X-Request-ID
//   - [Logger] : one structured log line per request
//   - [Recoverer] : converts handler panics into 500 responses
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [HealthHandler] and [MetricsHandler] are registered this way.
//
// # Serving
//
// [HTTPServer] runs until its context is canceled and then drains in-flight requests within the configured
// shutdown timeout.
package server
