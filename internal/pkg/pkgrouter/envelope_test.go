package pkgrouter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

type degradedBody struct {
	Value string `json:"value"`
}

func (degradedBody) Header() map[string]string {
	return map[string]string{"X-Upstream-Degraded": "tickers"}
}

func TestNewResponseEncodesJSON(t *testing.T) {
	resp := NewResponse(http.StatusOK, map[string]int{"n": 1})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if got := resp.Headers["Content-Type"]; got != ContentTypeJSON {
		t.Fatalf("unexpected content type %q", got)
	}
	if resp.Body != `{"n":1}` {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}

func TestNewResponseKeepsRawJSON(t *testing.T) {
	raw := json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`)

	resp := NewResponse(http.StatusOK, raw)
	if resp.Body != string(raw) {
		t.Fatalf("expected raw body unchanged, got %q", resp.Body)
	}
}

func TestNewResponseMergesPayloadHeaders(t *testing.T) {
	resp := NewResponse(http.StatusOK, degradedBody{Value: "x"})

	if got := resp.Headers["X-Upstream-Degraded"]; got != "tickers" {
		t.Fatalf("expected degraded header, got %q", got)
	}
	if got := resp.Headers["Content-Type"]; got != ContentTypeJSON {
		t.Fatalf("content type must survive, got %q", got)
	}
}

type brokenBody struct{}

func (brokenBody) MarshalJSON() ([]byte, error) {
	return nil, errors.New("broken")
}

func TestNewResponseEncodeFailure(t *testing.T) {
	resp := NewResponse(http.StatusOK, brokenBody{})

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 on encode failure, got %d", resp.StatusCode)
	}
	if resp.Body != `{"error":"Internal Server Error"}` {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}

func TestResponseWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorResponse(http.StatusBadRequest, "Invalid address request").Write(rec)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != ContentTypeJSON {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Body.String(); got != `{"error":"Invalid address request"}` {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestRequestFromHTTP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost,
		"/api/v1/addresses/0xabc/broadcast?blockchain=bsc&blockchain=eth",
		strings.NewReader("0xf86b"))

	req, err := RequestFromHTTP(r)
	if err != nil {
		t.Fatalf("RequestFromHTTP: %v", err)
	}
	if req.Path != "/api/v1/addresses/0xabc/broadcast" {
		t.Fatalf("unexpected path %q", req.Path)
	}
	if got := req.QueryValue("blockchain", "eth"); got != "bsc" {
		t.Fatalf("expected first query value, got %q", got)
	}
	if got := req.QueryValue("missing", "eth"); got != "eth" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if req.Body != "0xf86b" {
		t.Fatalf("unexpected body %q", req.Body)
	}
	if req.Method != http.MethodPost {
		t.Fatalf("unexpected method %q", req.Method)
	}
}
