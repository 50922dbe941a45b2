// Package server runs the HTTP API and the optional gRPC health endpoint.
//
// Both transports bind their listeners before serving, so an occupied port
// fails startup immediately. On SIGINT, SIGTERM or SIGQUIT the health status
// turns NOT_SERVING and in-flight requests are drained.
package server
