package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			http.Error(w, "failed to create gzip writer", http.StatusInternalServerError)
			return
		}
		defer gz.Close()

		gzResponseWriter := &gzipResponseWriter{Writer: gz, ResponseWriter: w}
		w.Header().Set("Content-Encoding", "gzip")
		next.ServeHTTP(gzResponseWriter, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer *gzip.Writer
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}
