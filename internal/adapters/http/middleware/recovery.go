package middleware

import (
	"fmt"
	"net/http"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics in downstream
// handlers, logs the failure with the goroutine stack, and writes the
// unclassified 500 envelope. It sits inside RequestLog so the replacement
// response still appears in the sent-response event.
//
// http.ErrAbortHandler is re-panicked so the server can abort the connection
// as the handler requested.
func Recovery(logger *logging.RequestLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				resp, status := dto.NewErrorResponse(r, fmt.Errorf("%v", v))
				logger.Exception(r, resp.Payload(), "event")
				dto.WriteJSON(w, r, status, resp)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
