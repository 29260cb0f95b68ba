// Package responsewriter wraps http.ResponseWriter to capture what the access
// log and the metrics middleware report: status, body size and the error the
// handler answered with.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the status code, the bytes written and the error
// passed to respond.Problem.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
	err           error
}

// Wrap returns w itself when it is already a *ResponseWriter, so stacked
// middlewares observe the same response.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the first status code and forwards it.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if !w.headerWritten {
		w.statusCode = statusCode
		w.headerWritten = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// Write writes the response body and records the size.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// RecordError keeps err for the access log.
func (w *ResponseWriter) RecordError(err error) { w.err = err }

// Err returns the recorded error, or nil.
func (w *ResponseWriter) Err() error { return w.err }

// StatusCode returns the recorded HTTP status code.
func (w *ResponseWriter) StatusCode() int { return w.statusCode }

// BytesWritten returns the number of bytes written to the response.
func (w *ResponseWriter) BytesWritten() int { return w.bytesWritten }

// Unwrap returns the underlying http.ResponseWriter for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
