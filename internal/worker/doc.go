// Package worker implements the edge request handler: exact-path dispatch
// to the /message, /random and not-found handlers, each answering with the
// JSON envelope from package response.
package worker
