package apigw

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// Adapter serves API Gateway proxy events with a plain http.Handler.
type Adapter struct {
	handler http.Handler
	logger  *slog.Logger
}

func New(handler http.Handler, logger *slog.Logger) *Adapter {
	return &Adapter{
		handler: handler,
		logger:  logger,
	}
}

// Handle is the function registered with lambda.Start. An event that cannot
// be turned into a request is returned as an invocation error.
func (a *Adapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := NewRequest(ctx, event)
	if err != nil {
		a.logger.Error("Failed to convert proxy event",
			slog.String("path", event.Path),
			slog.String("error", err.Error()))
		return events.APIGatewayProxyResponse{}, err
	}

	w := newResponseWriter()
	a.handler.ServeHTTP(w, req)

	return w.proxyResponse(), nil
}

// NewRequest converts a proxy event into an inbound *http.Request.
// Multi-value headers and query parameters take precedence over their
// single-value counterparts.
func NewRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	u := &url.URL{
		Path:     event.Path,
		RawQuery: queryValues(event).Encode(),
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, errors.Wrap(err, "decoding base64 body")
		}
		body = decoded
	}

	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s %q", event.HTTPMethod, event.Path)
	}
	req.RequestURI = u.RequestURI()

	for name, values := range event.MultiValueHeaders {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	for name, v := range event.Headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, v)
		}
	}

	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}
	req.RemoteAddr = event.RequestContext.Identity.SourceIP

	return req, nil
}

func queryValues(event events.APIGatewayProxyRequest) url.Values {
	values := url.Values{}
	for key, vs := range event.MultiValueQueryStringParameters {
		for _, v := range vs {
			values.Add(key, v)
		}
	}
	for key, v := range event.QueryStringParameters {
		if !values.Has(key) {
			values.Set(key, v)
		}
	}
	return values
}

type responseWriter struct {
	header      http.Header
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{
		header:     http.Header{},
		statusCode: http.StatusOK,
	}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.statusCode = code
	w.wroteHeader = true
}

func (w *responseWriter) Write(p []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	return w.body.Write(p)
}

func (w *responseWriter) proxyResponse() events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode:        w.statusCode,
		Headers:           make(map[string]string, len(w.header)),
		MultiValueHeaders: make(map[string][]string, len(w.header)),
	}

	for name, values := range w.header {
		resp.Headers[name] = strings.Join(values, ",")
		resp.MultiValueHeaders[name] = append([]string(nil), values...)
	}

	if utf8.Valid(w.body.Bytes()) {
		resp.Body = w.body.String()
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(w.body.Bytes())
		resp.IsBase64Encoded = true
	}

	return resp
}
