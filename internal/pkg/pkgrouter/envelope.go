package pkgrouter

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// ContentTypeJSON is the only content type this service answers with.
const ContentTypeJSON = "application/json"

// Request is the transport-neutral description of an inbound call.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   string
}

// QueryValue returns the query parameter key, or fallback when it is absent or empty.
func (r Request) QueryValue(key, fallback string) string {
	if v := r.Query[key]; v != "" {
		return v
	}
	return fallback
}

// RequestFromHTTP reads r into a Request. Only the first value of each query
// parameter is kept.
func RequestFromHTTP(r *http.Request) (Request, error) {
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  make(map[string]string, len(r.URL.Query())),
	}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			req.Query[key] = values[0]
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return Request{}, err
		}
		req.Body = string(body)
	}

	return req, nil
}

// Response is the transport envelope: status, headers and a serialized JSON body.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewResponse wraps body into a Response with the given status.
//
// json.RawMessage and []byte bodies are taken as already-encoded JSON and
// written unchanged. A body implementing Header() map[string]string adds
// those headers to the envelope.
func NewResponse(status int, body any) Response {
	headers := map[string]string{"Content-Type": ContentTypeJSON}
	if h, ok := body.(interface {
		Header() map[string]string
	}); ok {
		for k, v := range h.Header() {
			headers[k] = v
		}
	}

	payload, err := encodeBody(body)
	if err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": ContentTypeJSON},
			Body:       `{"error":"Internal Server Error"}`,
		}
	}

	return Response{StatusCode: status, Headers: headers, Body: string(payload)}
}

// NewErrorResponse renders {"error": msg} with the given status.
func NewErrorResponse(status int, msg string) Response {
	return NewResponse(status, errorBody{Error: msg})
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(body)
	}
}

// Write sends the envelope through w.
func (resp Response) Write(w http.ResponseWriter) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		slog.Error("server: failed to write response body", "error", err)
	}
}
