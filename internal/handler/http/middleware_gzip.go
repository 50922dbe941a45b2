package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
)

const msgInvalidGzip = "invalid gzip body"

var gzipReaderPool sync.Pool

// withGZipRequest decompresses request bodies sent with
// "Content-Encoding: gzip". Responses are compressed by chi's Compress.
func withGZipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isGzipEncoded(r) {
			next.ServeHTTP(w, r)
			return
		}

		body, err := newGzipBody(r.Body)
		if err != nil {
			logger.FromRequest(r).Info().Err(err).Msg(msgInvalidGzip)
			utils.WriteError(w, msgInvalidGzip, http.StatusBadRequest)
			return
		}

		r.Body = body
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

func isGzipEncoded(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Content-Encoding")), "gzip")
}

// newGzipBody takes a reader from the pool and returns it on Close.
func newGzipBody(src io.Reader) (io.ReadCloser, error) {
	zr, ok := gzipReaderPool.Get().(*gzip.Reader)
	if !ok {
		zr = new(gzip.Reader)
	}

	if err := zr.Reset(src); err != nil {
		gzipReaderPool.Put(zr)
		return nil, err
	}

	return &wrappedReadCloser{
		Reader: zr,
		OnClose: func() {
			zr.Close()
			gzipReaderPool.Put(zr)
		},
	}, nil
}

// wrappedReadCloser runs OnClose at most once.
type wrappedReadCloser struct {
	io.Reader
	OnClose func()
	once    sync.Once
}

func (w *wrappedReadCloser) Close() error {
	w.once.Do(func() {
		if w.OnClose != nil {
			w.OnClose()
		}
	})
	return nil
}
