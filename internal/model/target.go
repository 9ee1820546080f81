package model

import "fmt"

// ProxyTarget is the single upstream every request is forwarded to.
type ProxyTarget struct {
	Protocol string
	Host     string
	Port     int
}

// BaseURL renders proto://host:port.
func (t ProxyTarget) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", t.Protocol, t.Host, t.Port)
}

// URL appends the request URI verbatim to the base URL.
func (t ProxyTarget) URL(uri string) string {
	return t.BaseURL() + uri
}

func (t ProxyTarget) String() string {
	return t.BaseURL()
}
