package middlewares

import (
	"net/http"
	"strings"

	"github.com/ilya-burinskiy/webapis/internal/app/compress"
)

// GzipCompress decompresses gzip request bodies and compresses responses for clients accepting gzip
func GzipCompress(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") ||
			strings.Contains(r.Header.Get("Content-Type"), "gzip") {
			compressReader, err := compress.NewReader(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "malformed gzip body")
				return
			}
			r.Body = compressReader
			r.Header.Del("Content-Encoding")
			defer compressReader.Close()
		}

		acceptEncoding := r.Header.Get("Accept-Encoding")
		if strings.Contains(acceptEncoding, "gzip") {
			responseWriterWithCompress := compress.NewWriter(w)
			w = responseWriterWithCompress
			defer responseWriterWithCompress.Close()
		}

		h.ServeHTTP(w, r)
	})
}
