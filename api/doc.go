// Package api provides the HTTP API layer for the NewsCard service.
// It uses the Huma framework on a chi router to provide OpenAPI
// documentation, request validation and a typed handler interface.
//
// # Architecture
//
//   - server.go: Huma API configuration, CORS and middleware wiring
//   - handlers/: card, diagnostics and health handlers
//   - middleware/: request logging and per-client rate limiting
//
// # Endpoints
//
//	POST /cards          render one card, responds with image/png
//	POST /cards/preview  extracted title, lead paragraph and images
//	POST /cards/batch    render many single-image cards
//	POST /diagnostics    HTML structure report for a page
//	GET  /healthz        liveness and feature flags
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	a := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	})
//	defer a.Close()
//
//	handlers.NewCardHandler(cardService, flags).RegisterRoutes(a.Huma)
//	http.ListenAndServe(":8080", a.Router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 422,
//	    "title": "Unprocessable Entity",
//	    "detail": "requested image 5 but only 3 images available"
//	}
//
// An unreachable article page maps to 502, a render that runs past its
// deadline to 504.
package api
