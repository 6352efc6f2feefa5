// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, role-based
// authorization, request tracing, access logging, and metrics are handled in
// this package before requests are delegated to the service layer.
//
// Authorization always evaluates in two steps: the auth middleware resolves
// the principal (401 on failure) before any role gate runs (403 on failure),
// so an unauthenticated caller is never told whether the route would have
// been within reach.
package http
