package httperr

import (
	"bytes"
	"net/http"
)

// ResponseBuffer is an http.ResponseWriter that holds the response in memory
// until the pipeline releases it. Buffering lets the transaction resolve and
// the session flush strictly before any byte reaches the client, and lets
// middleware adjust headers after the handler has returned.
type ResponseBuffer struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{header: make(http.Header)}
}

func (b *ResponseBuffer) Header() http.Header {
	return b.header
}

func (b *ResponseBuffer) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *ResponseBuffer) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.body.Write(p)
}

// Status returns the buffered status code, defaulting to 200 when the
// handler never wrote one.
func (b *ResponseBuffer) Status() int {
	if !b.wroteHeader {
		return http.StatusOK
	}
	return b.status
}

// DiscardBody drops the buffered body and status while keeping headers
// (cookies set by middleware must survive error rendering).
func (b *ResponseBuffer) DiscardBody() {
	b.body.Reset()
	b.status = 0
	b.wroteHeader = false
}

// FlushTo copies the buffered headers, status, and body to w.
func (b *ResponseBuffer) FlushTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, vv := range b.header {
		dst[k] = vv
	}
	w.WriteHeader(b.Status())
	_, err := w.Write(b.body.Bytes())
	return err
}
