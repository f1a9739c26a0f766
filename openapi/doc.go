// Package openapi builds the OpenAPI 3 document of the library API from the
// schema kinds and serves it with Swagger UI.
//
// [Document] describes every endpoint. The generic helpers it is built from
// are exported for callers that mount extra routes:
//
//	doc := openapi.Document()
//	openapi.Get(doc, "/health", "health", openapi.Endpoint{Summary: "Liveness probe"})
//	http.Handle("/swagger/", openapi.SwaggerHandlerMust("/swagger/", doc))
package openapi
