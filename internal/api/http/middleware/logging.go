package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader - заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// statusRecorder запоминает код ответа и размер тела
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Logging логирует запросы с кодом ответа и временем выполнения.
// Если клиент не передал X-Request-ID, он генерируется и возвращается в ответе.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("[HTTP] %s %s %s - %d %dB - %v (%s)",
			requestID, r.Method, r.URL.Path, rec.statusCode, rec.bytes, time.Since(start), r.RemoteAddr)
	})
}
