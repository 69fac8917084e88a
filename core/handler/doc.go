// Package handler provides the core types for HTTP request processing with
// type-safe context handling and composable middleware chains.
//
// The package defines four types that work together:
//
//	// Response function renders HTTP responses
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// Type-safe handler with custom context
//	type HandlerFunc[C Context] func(ctx C) Response
//
//	// Error handling function
//	type ErrorHandler[C Context] func(ctx C, err error)
//
//	// Middleware function for handler composition
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// The Context interface extends Go's standard context.Context with
// HTTP-specific methods and a request-scoped value store. Use
// reqctx.Context for the default implementation, or implement the
// interface for application-specific contexts.
//
// Build a processing pipeline with Chain and serve it with ToHTTP:
//
//	chain := handler.Chain([]handler.Middleware[*reqctx.Context]{
//		middleware.RealIP[*reqctx.Context](),
//		middleware.Identity[*reqctx.Context](gate, users),
//	}, endpoint)
//
//	http.Handle("/", handler.ToHTTP(chain, reqctx.New, errorHandler))
package handler
