// Package http implements the REST transport of the shop backend.
//
// It wires the chi router, the user and order handlers, and the middleware
// chain: trace ids, access logging, Prometheus metrics, gzip, bearer-token
// authentication, the admin gate, credential rate limiting and the payment
// callback signature check. Every error leaves this package as a JSON
// {message, stack?} body produced by writeError.
package http
