package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/linearmarketingsolutions/website/cmd/mainconfig"
	appconfig "github.com/linearmarketingsolutions/website/internal/config"
	"github.com/linearmarketingsolutions/website/internal/contact"
	"github.com/linearmarketingsolutions/website/internal/http/handlers"
	httpmiddleware "github.com/linearmarketingsolutions/website/internal/http/middleware"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	// The provider credential is read once per cold start, not per invocation.
	sender, err := mainconfig.NewEmailSender(context.Background(), cfg, logger)
	if err != nil {
		panic(err)
	}

	h := newContactHandler(handlers.ContactHandlerConfig{
		Sender:      sender,
		Logger:      logger,
		SendTimeout: cfg.EmailSendTimeout,
	})
	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, h, evt)
	})
}

func newContactHandler(cfg handlers.ContactHandlerConfig) http.Handler {
	h := handlers.NewContactHandler(cfg)
	return httpmiddleware.RequestLogger(cfg.Logger)(httpmiddleware.ContactCORS(h))
}

func handle(ctx context.Context, h http.Handler, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	path := strings.TrimSpace(evt.RawPath)
	if path == "" {
		path = strings.TrimSpace(evt.RequestContext.HTTP.Path)
	}

	if path == "/health" || path == "/_health" {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK, Body: "ok"}, nil
	}

	body, err := decodeBody(evt)
	if err != nil {
		return failure(http.StatusBadRequest, contact.MsgUnexpected), nil
	}

	target := &url.URL{Path: path, RawQuery: evt.RawQueryString}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(body))
	if err != nil {
		return failure(http.StatusInternalServerError, contact.MsgUnexpected), nil
	}
	for k, v := range evt.Headers {
		req.Header.Set(k, v)
	}
	if id := strings.TrimSpace(evt.RequestContext.RequestID); id != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", id)
	}
	if ip := strings.TrimSpace(evt.RequestContext.HTTP.SourceIP); ip != "" {
		req.RemoteAddr = ip
	}

	rw := newResponseWriter()
	h.ServeHTTP(rw, req)
	return rw.response(), nil
}

// failure answers requests that never reach the contact handler with the
// same CORS headers and JSON envelope the handler would use.
func failure(status int, msg string) events.APIGatewayV2HTTPResponse {
	rw := newResponseWriter()
	httpmiddleware.SetContactCORSHeaders(rw.Header())
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(contact.Failed(msg))
	return rw.response()
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(evt.Body)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// responseWriter buffers a handler's output into an API Gateway response.
type responseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: http.Header{}}
}

func (w *responseWriter) Header() http.Header { return w.header }

func (w *responseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(p)
}

func (w *responseWriter) response() events.APIGatewayV2HTTPResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	headers := make(map[string]string, len(w.header))
	for k, v := range w.header {
		headers[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       w.body.String(),
	}
}
