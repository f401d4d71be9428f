package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
)

// requestIDHeader is the response header carrying the correlation id, and the
// request header a caller may use to supply one.
const requestIDHeader = "request_id"

// eventReceived and eventSent are the observability event names emitted for
// each request/response pair.
const (
	eventReceived = "client_received_request"
	eventSent     = "client_sent_response"
)

// RequestLog returns the observability middleware. For every request it
// assigns a correlation id, logs the inbound request with its sanitized
// payload, buffers the downstream response, logs the outbound response, and
// replays the buffered body to the client byte for byte.
//
// The response is written to the client only after the sent event is logged.
// If the buffered body cannot be read back, the response is replaced with a
// fixed 500 envelope so the client never receives a half-logged body.
func RequestLog(logger *logging.RequestLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			r = r.WithContext(logging.WithRequestID(r.Context(), id))

			logger.Info(r, captureRequestPayload(r), eventReceived)

			rec := newBufferedResponse()
			next.ServeHTTP(rec, r)

			finishResponse(w, r, logger, rec, id)
		})
	}
}

// finishResponse drains the buffered response, logs the sent event, and
// replays status, headers, and body to the client. A drain failure replaces
// the response with a 500 envelope, and the sent event then carries that
// envelope; the original body is discarded.
func finishResponse(w http.ResponseWriter, r *http.Request, logger *logging.RequestLogger, rec *bufferedResponse, id string) {
	body, err := rec.body()
	if err != nil {
		resp := dto.NewInternalServerResponse(r, err.Error())
		logger.Exception(r, resp.Payload(), "event")
		logger.Info(r, resp.Payload(), eventSent)
		w.Header().Set(requestIDHeader, id)
		dto.WriteJSON(w, r, http.StatusInternalServerError, resp)
		return
	}

	logger.Info(r, decodePayload(body, rec.header.Get("Content-Type")), eventSent)

	headers := w.Header()
	for key, vals := range rec.header {
		for _, v := range vals {
			headers.Add(key, v)
		}
	}
	headers.Set(requestIDHeader, id)

	w.WriteHeader(rec.status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

// captureRequestPayload reads and restores the request body, returning its
// decoded form for logging. Multipart uploads and bodyless requests yield nil
// so file content never enters the log stream.
func captureRequestPayload(r *http.Request) any {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "multipart/") {
		return nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	data, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil || len(data) == 0 {
		return nil
	}

	return decodePayload(data, contentType)
}

// decodePayload decodes a captured body for logging. JSON bodies become their
// decoded value so the sanitizer can mask and trim fields. Anything that does
// not parse as JSON yields nil; raw bytes never enter the log stream where the
// sanitizer cannot reach them.
func decodePayload(body []byte, contentType string) any {
	if len(body) == 0 || strings.HasPrefix(contentType, "multipart/") {
		return nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return v
}

// bufferedResponse is an http.ResponseWriter that records status, headers,
// and body in memory so the observability middleware can inspect the response
// before anything reaches the client.
type bufferedResponse struct {
	header        http.Header
	buf           io.ReadWriter
	status        int
	headerWritten bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{
		header: make(http.Header),
		buf:    &bytes.Buffer{},
		status: http.StatusOK,
	}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

// WriteHeader records the status code. Only the first call takes effect.
func (b *bufferedResponse) WriteHeader(code int) {
	if b.headerWritten {
		return
	}
	b.status = code
	b.headerWritten = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.headerWritten = true
	return b.buf.Write(p)
}

// body drains the recorded response body.
func (b *bufferedResponse) body() ([]byte, error) {
	return io.ReadAll(b.buf)
}
