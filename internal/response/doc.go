// Package response builds the {code, message, data} JSON envelope returned
// for every request, together with its content type and CORS header.
package response
