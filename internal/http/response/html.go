package response

import (
	"net/http"

	"github.com/Xunop/e-library/internal/http/request"
	"github.com/Xunop/e-library/internal/log"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// HTML writes a rendered page. Pages depend on the session, so they are never cached.
func HTML(w http.ResponseWriter, r *http.Request, body []byte) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", htmlContentType)
	builder.WithoutCache()
	builder.WithBody(body)
	builder.Write()
}

// HTMLServerError logs err and shows a generic failure page. The error
// itself is not shown to the user.
func HTMLServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		zap.Error(err),
		zap.String("client_ip", request.ClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.Int("response.status_code", http.StatusInternalServerError),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusInternalServerError)
	builder.WithHeader("Content-Type", htmlContentType)
	builder.WithoutCache()
	builder.WithBody([]byte(`<!DOCTYPE html><title>Error</title><p>Something went wrong while reading the library. Please try again later.</p>`))
	builder.Write()
}
