// Package service implements the core proxy forwarding logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"relay-proxy/internal/metrics"
	"relay-proxy/internal/model"
)

var (
	// ErrNoContentType is returned when a POST or PUT request has no content-type header.
	ErrNoContentType = errors.New("no content-type on request with body")
	// ErrUpstream wraps every failure of the outbound call.
	ErrUpstream = errors.New("upstream request failed")
	// ErrUnsupportedMethod is returned for methods outside the forwarded set.
	ErrUnsupportedMethod = errors.New("unsupported method")
)

// CodeHeader is the synthetic response header that repeats the upstream status.
const CodeHeader = "code"

// Upstream performs the outbound HTTP call.
type Upstream interface {
	Do(ctx context.Context, req *model.OutboundRequest) (*model.UpstreamResponse, error)
}

// ProxyService forwards inbound requests to a single fixed target.
type ProxyService struct {
	upstream Upstream
	target   model.ProxyTarget
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewProxyService creates a ProxyService. The metrics parameter is optional.
func NewProxyService(up Upstream, target model.ProxyTarget, logger *slog.Logger, m *metrics.Metrics) *ProxyService {
	return &ProxyService{
		upstream: up,
		target:   target,
		logger:   logger.With("component", "proxy_service"),
		metrics:  m,
	}
}

// Target returns the configured upstream target.
func (s *ProxyService) Target() model.ProxyTarget {
	return s.target
}

// Handle forwards req to the target and returns exactly one outcome.
// Every failure is reported as Failed; nothing is retried.
func (s *ProxyService) Handle(ctx context.Context, req *model.InboundRequest) model.Outcome {
	method := model.ParseMethod(req.Method)
	if method == model.MethodUnsupported {
		s.logger.Warn("unsupported method",
			"method", req.Method,
			"uri", req.URI,
		)
		s.record(metrics.OutcomeUnsupportedMethod)
		return model.Failed{Reason: fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)}
	}

	s.logger.Info("proxying request",
		"method", req.Method,
		"uri", req.URI,
		"target", s.target.String(),
	)

	out, err := s.buildOutbound(method, req)
	if err != nil {
		s.logger.Error("proxy request rejected",
			"err", err,
			"method", req.Method,
			"uri", req.URI,
		)
		s.record(metrics.OutcomeNoContentType)
		return model.Failed{Reason: err}
	}

	resp, err := s.upstream.Do(ctx, out)
	if err != nil {
		s.logger.Error("proxy request failed",
			"err", err,
			"method", req.Method,
			"url", out.URL,
		)
		s.record(metrics.OutcomeUpstreamError)
		return model.Failed{Reason: fmt.Errorf("%w: %w", ErrUpstream, err)}
	}

	s.record(metrics.OutcomeForwarded)
	return forwarded(resp)
}

// buildOutbound derives the upstream request. POST and PUT carry the body
// and content-type; other methods carry neither.
func (s *ProxyService) buildOutbound(method model.Method, req *model.InboundRequest) (*model.OutboundRequest, error) {
	out := &model.OutboundRequest{
		Method:  method,
		URL:     s.target.URL(req.URI),
		Headers: rewriteHost(req.Headers, s.target.Host),
	}

	if !method.CarriesBody() {
		return out, nil
	}

	ct, ok := req.ContentType()
	if !ok {
		return nil, ErrNoContentType
	}
	out.HasBody = true
	out.ContentType = ct
	out.Body = req.Body
	return out, nil
}

// rewriteHost drops every "host" entry and puts the target host first.
func rewriteHost(h model.Headers, host string) model.Headers {
	rest := h.Without("host")
	out := make(model.Headers, 0, len(rest)+1)
	out = append(out, model.Header{Key: "host", Value: host})
	return append(out, rest...)
}

// forwarded maps the upstream response, prefixing the synthetic code header.
func forwarded(resp *model.UpstreamResponse) model.Forwarded {
	headers := make(model.Headers, 0, len(resp.Headers)+1)
	headers = append(headers, model.Header{Key: CodeHeader, Value: strconv.Itoa(resp.StatusCode)})
	headers = append(headers, resp.Headers...)

	return model.Forwarded{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       resp.Body,
	}
}

func (s *ProxyService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.Outcomes.WithLabelValues(outcome).Inc()
	}
}
