package linefold

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPFoldRequest configures HTTPFold.
type HTTPFoldRequest struct {
	URL         string
	Client      *http.Client
	Writer      io.Writer
	Columns     int
	Indent      string
	IndentLevel int
	LinePrefix  string
	Options     []Option
}

// HTTPFold fetches plain text over HTTP(S) and soft-wraps it to the
// request Writer.
func HTTPFold(ctx context.Context, req HTTPFoldRequest) error {
	if req.URL == "" {
		return fmt.Errorf("linefold: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("linefold: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("linefold: build request: %w", err)
	}
	switch httpReq.URL.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("linefold: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("linefold: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("linefold: status %s", resp.Status)
	}
	return Fold(FoldRequest{
		Reader:      resp.Body,
		Writer:      req.Writer,
		Columns:     req.Columns,
		Indent:      req.Indent,
		IndentLevel: req.IndentLevel,
		LinePrefix:  req.LinePrefix,
		Options:     req.Options,
	})
}
