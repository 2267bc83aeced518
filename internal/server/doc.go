// Package server runs the HTTP and gRPC transports together with the
// background workers, and shuts all of them down on SIGINT, SIGTERM or
// SIGQUIT.
package server
