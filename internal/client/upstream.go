// Package client provides the outbound HTTP client for the proxy target.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"relay-proxy/internal/config"
	"relay-proxy/internal/metrics"
	"relay-proxy/internal/model"
)

// UpstreamClient sends forwarded requests to the proxy target.
type UpstreamClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewUpstreamClient creates an UpstreamClient that never follows redirects.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewUpstreamClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *UpstreamClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		// Bodies are relayed byte for byte; never negotiate gzip on the caller's behalf.
		DisableCompression: true,
	}

	return &UpstreamClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger:  logger.With("component", "upstream_client"),
		metrics: m,
	}
}

// Do sends req upstream and returns the fully read response.
func (c *UpstreamClient) Do(ctx context.Context, req *model.OutboundRequest) (*model.UpstreamResponse, error) {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	c.logger.Debug("upstream request",
		"method", httpReq.Method,
		"url", req.URL,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start).Seconds()

	method := metrics.NormalizeMethod(httpReq.Method)
	if c.metrics != nil {
		c.metrics.UpstreamDuration.WithLabelValues(method).Observe(duration)
	}
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	if c.metrics != nil {
		c.metrics.UpstreamResponses.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	}

	return &model.UpstreamResponse{
		Proto:      resp.Proto,
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Headers:    model.HeadersFromHTTP(resp.Header),
		Body:       body,
	}, nil
}

func (c *UpstreamClient) build(ctx context.Context, req *model.OutboundRequest) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if req.HasBody {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), req.URL, body)
	if err != nil {
		return nil, err
	}

	for _, h := range req.Headers {
		if h.Key == "host" {
			httpReq.Host = h.Value
			continue
		}
		httpReq.Header.Add(h.Key, h.Value)
	}
	if req.HasBody {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	// An empty value stops net/http from adding its own User-Agent.
	if _, ok := httpReq.Header["User-Agent"]; !ok {
		httpReq.Header["User-Agent"] = []string{""}
	}

	return httpReq, nil
}

// reasonPhrase extracts the text after the status code in the status line.
func reasonPhrase(resp *http.Response) string {
	return strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
}
