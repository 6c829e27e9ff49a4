package compress

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var writerPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// Content types worth compressing
var compressibleTypes = []string{
	"application/json",
	"text/",
}

// Response writer with gzip compression of compressible successful responses
type Writer struct {
	w           http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

// Creates response writer with gzip compression
func NewWriter(w http.ResponseWriter) *Writer {
	return &Writer{w: w}
}

// Header
func (cw *Writer) Header() http.Header {
	return cw.w.Header()
}

// Writes compressed data
func (cw *Writer) Write(p []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.zw != nil {
		return cw.zw.Write(p)
	}

	return cw.w.Write(p)
}

// WriteHeader decides whether the body is compressed
func (cw *Writer) WriteHeader(statusCode int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	header := cw.w.Header()
	if statusCode < 300 && header.Get("Content-Encoding") == "" && compressible(header.Get("Content-Type")) {
		header.Set("Content-Encoding", "gzip")
		header.Add("Vary", "Accept-Encoding")
		header.Del("Content-Length")
		cw.zw = writerPool.Get().(*gzip.Writer)
		cw.zw.Reset(cw.w)
	}
	cw.w.WriteHeader(statusCode)
}

// Close flushes compressed data
func (cw *Writer) Close() error {
	if cw.zw == nil {
		return nil
	}

	err := cw.zw.Close()
	writerPool.Put(cw.zw)
	cw.zw = nil

	return err
}

func compressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}

	return false
}

// Reader for compressed data
type Reader struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

// Creates reader for compressed data
func NewReader(r io.ReadCloser) (*Reader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{
		r:  r,
		zr: zr,
	}, nil
}

// Read uncompressed data
func (cr Reader) Read(p []byte) (int, error) {
	return cr.zr.Read(p)
}

// Close
func (cr *Reader) Close() error {
	if err := cr.r.Close(); err != nil {
		return err
	}
	return cr.zr.Close()
}
