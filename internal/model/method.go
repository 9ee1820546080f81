package model

// Method is the closed set of HTTP methods the proxy forwards.
type Method int

const (
	MethodUnsupported Method = iota
	MethodGet
	MethodPost
	MethodHead
	MethodPut
	MethodDelete
	MethodTrace
	MethodOptions
)

var methodNames = map[Method]string{
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodHead:    "HEAD",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodTrace:   "TRACE",
	MethodOptions: "OPTIONS",
}

var methodsByName = map[string]Method{
	"GET":     MethodGet,
	"POST":    MethodPost,
	"HEAD":    MethodHead,
	"PUT":     MethodPut,
	"DELETE":  MethodDelete,
	"TRACE":   MethodTrace,
	"OPTIONS": MethodOptions,
}

// SupportedMethods lists the forwarded method tokens in declaration order.
var SupportedMethods = []string{"GET", "POST", "HEAD", "PUT", "DELETE", "TRACE", "OPTIONS"}

// ParseMethod maps a request method token to a Method. The match is
// case-sensitive; unknown tokens yield MethodUnsupported.
func ParseMethod(token string) Method {
	if m, ok := methodsByName[token]; ok {
		return m
	}
	return MethodUnsupported
}

// String returns the wire token, or "UNSUPPORTED".
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "UNSUPPORTED"
}

// CarriesBody reports whether requests with this method forward an entity body.
func (m Method) CarriesBody() bool {
	return m == MethodPost || m == MethodPut
}
