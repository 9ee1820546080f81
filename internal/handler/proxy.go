package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"relay-proxy/internal/config"
	"relay-proxy/internal/metrics"
	"relay-proxy/internal/middleware"
	"relay-proxy/internal/model"
	"relay-proxy/internal/service"
)

// allowHeader is sent with 405 responses.
var allowHeader = strings.Join(model.SupportedMethods, ", ")

// ProxyHandler adapts Echo requests to the proxy service and writes its verdict back.
type ProxyHandler struct {
	service        *service.ProxyService
	logger         *slog.Logger
	emitCodeHeader bool
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, cfg *config.Config, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service:        svc,
		logger:         logger.With("component", "proxy_handler"),
		emitCodeHeader: cfg.Upstream.EmitCodeHeader,
	}
}

// Handle proxies the request to the configured target.
func (h *ProxyHandler) Handle(c echo.Context) error {
	in, err := decodeRequest(c.Request())
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		h.logger.Error("reading request body",
			"err", err,
			"uri", c.Request().RequestURI,
		)
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	outcome := h.service.Handle(c.Request().Context(), in)
	c.Set(middleware.OutcomeKey, outcomeLabel(outcome))
	return h.emit(c, Directive(outcome))
}

func outcomeLabel(outcome model.Outcome) string {
	switch o := outcome.(type) {
	case model.Forwarded:
		return metrics.OutcomeForwarded
	case model.Failed:
		switch {
		case errors.Is(o.Reason, service.ErrUnsupportedMethod):
			return metrics.OutcomeUnsupportedMethod
		case errors.Is(o.Reason, service.ErrNoContentType):
			return metrics.OutcomeNoContentType
		}
	}
	return metrics.OutcomeUpstreamError
}

// Directive translates a proxy outcome into the response sent to the client.
// Forwarded responses pass through untouched; an unsupported method gets a
// 405 and every other failure a bare 502.
func Directive(outcome model.Outcome) model.ResponseDirective {
	switch o := outcome.(type) {
	case model.Forwarded:
		return model.ResponseDirective{Status: o.StatusCode, Headers: o.Headers, Body: o.Body}
	case model.Failed:
		if errors.Is(o.Reason, service.ErrUnsupportedMethod) {
			return model.ResponseDirective{
				Status:  http.StatusMethodNotAllowed,
				Headers: model.Headers{{Key: "allow", Value: allowHeader}},
			}
		}
	}
	return model.ResponseDirective{Status: http.StatusBadGateway}
}

// emit writes d using the native status line. The synthetic code header is
// only written when configured.
func (h *ProxyHandler) emit(c echo.Context, d model.ResponseDirective) error {
	res := c.Response()
	for _, e := range d.Headers {
		if e.Key == service.CodeHeader && !h.emitCodeHeader {
			continue
		}
		res.Header().Add(e.Key, e.Value)
	}
	res.WriteHeader(d.Status)

	if len(d.Body) == 0 {
		return nil
	}
	if _, err := res.Write(d.Body); err != nil {
		h.logger.Error("writing response body",
			"err", err,
			"uri", c.Request().RequestURI,
		)
	}
	return nil
}

// decodeRequest converts r into the proxy's request descriptor. The host
// header comes first, followed by the remaining headers sorted by key.
func decodeRequest(r *http.Request) (*model.InboundRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	headers := model.Headers{}
	if r.Host != "" {
		headers = append(headers, model.Header{Key: "host", Value: r.Host})
	}
	headers = append(headers, model.HeadersFromHTTP(r.Header)...)

	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	return &model.InboundRequest{
		Method:  r.Method,
		URI:     uri,
		Headers: headers,
		Body:    body,
	}, nil
}
