package spotify

import (
	"bytes"
	"io"
	"net/http"
)

const maxErrorBodySize = 64 << 10

// responseRecorder remembers the status and body of a failed response so the
// caller can report them regardless of how the API library decoded the error.
// It serves a single request at a time.
type responseRecorder struct {
	base       http.RoundTripper
	statusCode int
	body       []byte
}

func (r *responseRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	r.statusCode = resp.StatusCode
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	r.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return resp, nil
}

func (r *responseRecorder) searchError(err error) *SearchError {
	if r.statusCode == 0 || isSuccess(r.statusCode) {
		return &SearchError{
			StatusCode: StatusTransport,
			Body:       err.Error(),
			Err:        err,
		}
	}

	return &SearchError{
		StatusCode: r.statusCode,
		Body:       string(r.body),
		Err:        err,
	}
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}
