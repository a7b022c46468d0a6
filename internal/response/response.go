package response

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const (
	ContentTypeJSON = "application/json; charset=utf-8"

	DefaultMessage  = "success"
	NotFoundMessage = "Not Found"
)

// Envelope is the wrapper every response body is serialized as.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type Option func(*Envelope)

// WithCode sets both the envelope code and the HTTP status.
func WithCode(code int) Option {
	return func(e *Envelope) {
		e.Code = code
	}
}

func WithMessage(message string) Option {
	return func(e *Envelope) {
		e.Message = message
	}
}

// New builds an envelope around data, defaulting to 200 and "success".
func New(data any, opts ...Option) Envelope {
	e := Envelope{
		Code:    http.StatusOK,
		Message: DefaultMessage,
		Data:    data,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Marshal renders the envelope with two-space indentation. HTML characters
// are left unescaped and no trailing newline is emitted.
func (e Envelope) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(e); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write serializes an envelope around data to w. It returns the status
// written. A payload that cannot be serialized yields a bare 500 without an
// envelope.
func Write(w http.ResponseWriter, data any, opts ...Option) int {
	e := New(data, opts...)

	body, err := e.Marshal()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(e.Code)
	_, _ = w.Write(body)

	return e.Code
}
