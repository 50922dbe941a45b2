// Package http serves the credential API over HTTP with a chi router.
//
// Handlers decode JSON credentials, call the auth service and translate its
// error kinds into status codes with a uniform {"error": "..."} body. The
// middleware chain adds panic recovery, trace ids, access logs, CORS,
// gzip in both directions and a per-request timeout.
package http
