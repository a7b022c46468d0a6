// Package clientinfo derives the caller description included in every
// response payload from the edge-provided request headers.
package clientinfo

import "net/http"

const (
	HeaderConnectingIP = "CF-Connecting-IP"
	HeaderUserAgent    = "User-Agent"

	UnknownIP        = "未知IP"
	UnknownUserAgent = "未知User-Agent"
)

// Info is embedded into handler payloads, so its fields follow the
// payload-specific field in the serialized output.
type Info struct {
	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent"`
}

// Extract reads the client headers. Missing or empty values are replaced by
// the Unknown placeholders; present values are passed through unvalidated.
func Extract(h http.Header) Info {
	return Info{
		ClientIP:  valueOr(h.Get(HeaderConnectingIP), UnknownIP),
		UserAgent: valueOr(h.Get(HeaderUserAgent), UnknownUserAgent),
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
