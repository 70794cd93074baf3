package api

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/gorewood/meso/internal/output"
)

// decode unwraps a response body according to its Content-Encoding.
// An empty or identity encoding returns the body unchanged.
func decode(body []byte, encoding string) ([]byte, error) {
	switch {
	case strings.Contains(encoding, "br"):
		return readAll(brotli.NewReader(bytes.NewReader(body)), encoding)
	case strings.Contains(encoding, "gzip"):
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, output.NewSystemErrorWithCause("gzip response undecodable", err)
		}
		return readAll(reader, encoding)
	case strings.Contains(encoding, "deflate"):
		return inflate(body)
	default:
		return body, nil
	}
}

// inflate handles the deflate encoding's two wire forms: zlib-wrapped
// (what servers should send) and raw flate (what some send anyway).
func inflate(body []byte) ([]byte, error) {
	if reader, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		return readAll(reader, "deflate")
	}
	return readAll(flate.NewReader(bytes.NewReader(body)), "deflate")
}

// readAll drains a decompressing reader, wrapping failures with the encoding name.
func readAll(r io.Reader, encoding string) ([]byte, error) {
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, output.NewSystemErrorWithCause(encoding+" response undecodable", err)
	}
	return decoded, nil
}
