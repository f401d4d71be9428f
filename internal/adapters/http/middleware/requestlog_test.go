package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// decodeEvents splits the log buffer into one decoded event per line.
func decodeEvents(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("log line is not valid JSON: %v\nline: %s", err, line)
		}
		events = append(events, event)
	}
	return events
}

func TestRequestLog_EmitsReceivedAndSentEvents(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))

	body := strings.NewReader(`{"name":"garage-cam","password":"Str0ng-pass!"}`)
	r := httptest.NewRequest("POST", "/v1/sources", body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	events := decodeEvents(t, buf)
	if len(events) != 2 {
		t.Fatalf("got %d events, want received + sent", len(events))
	}
	if events[0]["message"] != "client_received_request" {
		t.Errorf("first event = %v, want client_received_request", events[0]["message"])
	}
	if events[1]["message"] != "client_sent_response" {
		t.Errorf("second event = %v, want client_sent_response", events[1]["message"])
	}

	// The request payload is sanitized before logging.
	received := events[0]["detail"].(map[string]any)["payload"].(map[string]any)
	if received["password"] != "[masked]" {
		t.Errorf("logged password = %v, want [masked]", received["password"])
	}
	if received["name"] != "garage-cam" {
		t.Errorf("logged name = %v", received["name"])
	}

	// The response payload appears in the sent event.
	sent := events[1]["detail"].(map[string]any)["payload"].(map[string]any)
	if sent["id"] != "abc" {
		t.Errorf("sent payload = %v", sent)
	}
}

func TestRequestLog_ReplaysResponseVerbatim(t *testing.T) {
	t.Parallel()

	logger, _ := testLogger()
	const responseBody = `{"id":"abc","name":"garage-cam"}`

	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(responseBody))
	}))

	r := httptest.NewRequest("GET", "/v1/sources/abc", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if w.Body.String() != responseBody {
		t.Errorf("body = %q, want byte-identical replay", w.Body.String())
	}
	if w.Header().Get("X-Custom") != "value" {
		t.Error("handler headers not replayed")
	}
	if w.Header().Get("request_id") == "" {
		t.Error("request_id header missing from response")
	}
}

func TestRequestLog_RequestBodyRestoredForHandler(t *testing.T) {
	t.Parallel()

	logger, _ := testLogger()
	const requestBody = `{"name":"garage-cam"}`

	var seen string
	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		seen = string(data)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("POST", "/v1/sources", strings.NewReader(requestBody))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if seen != requestBody {
		t.Errorf("handler saw body %q, want %q", seen, requestBody)
	}
}

func TestRequestLog_SkipsMultipartPayload(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("POST", "/v1/sources", strings.NewReader("--boundary\r\nfile bytes"))
	r.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	events := decodeEvents(t, buf)
	detail := events[0]["detail"].(map[string]any)
	if _, present := detail["payload"]; present {
		t.Errorf("multipart payload logged, want omitted: %v", detail["payload"])
	}
}

func TestRequestLog_NonJSONBodySuppressed(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("POST", "/v1/sources", strings.NewReader("user=admin&password=hunter2"))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	// Unparseable bodies never reach the log; the sanitizer cannot mask them.
	events := decodeEvents(t, buf)
	detail := events[0]["detail"].(map[string]any)
	if payload, present := detail["payload"]; present {
		t.Errorf("non-JSON payload logged, want omitted: %v", payload)
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Error("raw body leaked into the log stream")
	}
}

func TestRequestLog_CorrelationIDJoinsEvents(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/v1/sources", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	events := decodeEvents(t, buf)
	received := events[0]["detail"].(map[string]any)["request_id"]
	sent := events[1]["detail"].(map[string]any)["request_id"]

	if received == nil || received == "" {
		t.Fatal("received event has no request_id")
	}
	if received != sent {
		t.Errorf("request_id differs across events: %v vs %v", received, sent)
	}
	if w.Header().Get("request_id") != received {
		t.Errorf("response header id %q != logged id %v", w.Header().Get("request_id"), received)
	}
}

func TestFinishResponse_DrainFailureReplacesResponse(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	rec := &bufferedResponse{
		header: make(http.Header),
		buf:    &failingStream{err: errors.New("stream interrupted")},
		status: http.StatusOK,
	}
	rec.WriteHeader(http.StatusOK)
	_, _ = rec.Write([]byte(`{"id":"abc"}`))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://acme.example.com/v1/sources", nil)

	finishResponse(w, r, logger, rec, "req-1")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if envelope["error_code"] != "InternalServerError" {
		t.Errorf("error_code = %v", envelope["error_code"])
	}
	if envelope["message"] != "Something went wrong!" {
		t.Errorf("message = %v", envelope["message"])
	}
	if envelope["detail"] != "stream interrupted" {
		t.Errorf("detail = %v", envelope["detail"])
	}
	if w.Header().Get("request_id") != "req-1" {
		t.Error("request_id header missing from replacement response")
	}

	// The failure is logged with a stack, and the sent-response event still
	// goes out describing the replacement envelope the client received.
	events := decodeEvents(t, buf)
	if len(events) != 2 {
		t.Fatalf("got %d events, want failure + sent", len(events))
	}
	if events[0]["severity"] != "error" {
		t.Errorf("severity = %v, want error", events[0]["severity"])
	}
	if _, present := events[0]["stack"]; !present {
		t.Error("stack missing from drain failure event")
	}
	if events[1]["message"] != "client_sent_response" {
		t.Errorf("second event = %v, want client_sent_response", events[1]["message"])
	}
	sent := events[1]["detail"].(map[string]any)["payload"].(map[string]any)
	if sent["error_code"] != "InternalServerError" {
		t.Errorf("sent payload = %v, want the replacement envelope", sent)
	}
}

func TestBufferedResponse_FirstHeaderWins(t *testing.T) {
	t.Parallel()

	rec := newBufferedResponse()
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusOK)

	if rec.status != http.StatusNotFound {
		t.Errorf("status = %d, want first WriteHeader to win", rec.status)
	}
}

func TestBufferedResponse_ImplicitOK(t *testing.T) {
	t.Parallel()

	rec := newBufferedResponse()
	_, _ = rec.Write([]byte("body"))
	rec.WriteHeader(http.StatusNotFound)

	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want implicit 200 after Write", rec.status)
	}
}

// failingStream accepts writes but cannot be read back, standing in for an
// unreadable response buffer.
type failingStream struct {
	err error
}

func (f *failingStream) Write(p []byte) (int, error) {
	return len(p), nil
}

func (f *failingStream) Read(_ []byte) (int, error) {
	return 0, f.err
}
