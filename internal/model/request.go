// Package model defines shared types for the proxy.
package model

import (
	"net/http"
	"sort"
	"strings"
)

// Header is a single header entry. Keys are expected in lower case.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered header list that may contain duplicate keys.
type Headers []Header

// Get returns the first value stored under key. Matching is exact.
func (h Headers) Get(key string) (string, bool) {
	for _, e := range h {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Without returns a copy of h with every entry under key removed,
// preserving the relative order of the rest.
func (h Headers) Without(key string) Headers {
	out := make(Headers, 0, len(h))
	for _, e := range h {
		if e.Key != key {
			out = append(out, e)
		}
	}
	return out
}

// HeadersFromHTTP flattens h into lower-cased entries sorted by key.
// Values of a repeated header keep their received order. The order of
// distinct header names on the wire is not recoverable from http.Header, so
// entries are sorted to keep the forwarded list deterministic.
func HeadersFromHTTP(h http.Header) Headers {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Headers, 0, len(keys))
	for _, k := range keys {
		lk := strings.ToLower(k)
		for _, v := range h[k] {
			out = append(out, Header{Key: lk, Value: v})
		}
	}
	return out
}

// InboundRequest is the decoded request handed over by the host server.
type InboundRequest struct {
	Method  string
	URI     string
	Headers Headers
	Body    []byte
}

// ContentType returns the "content-type" header value if present.
func (r *InboundRequest) ContentType() (string, bool) {
	return r.Headers.Get("content-type")
}

// OutboundRequest is the request sent to the upstream target.
// ContentType and Body are only set when HasBody is true.
type OutboundRequest struct {
	Method      Method
	URL         string
	Headers     Headers
	HasBody     bool
	ContentType string
	Body        []byte
}
