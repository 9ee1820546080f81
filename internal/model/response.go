package model

// UpstreamResponse is the fully buffered response returned by the upstream.
type UpstreamResponse struct {
	Proto      string
	StatusCode int
	Reason     string
	Headers    Headers
	Body       []byte
}

// Outcome is the result of proxying one request: either Forwarded or Failed.
type Outcome interface {
	isOutcome()
}

// Forwarded carries the relayed upstream response.
type Forwarded struct {
	StatusCode int
	Headers    Headers
	Body       []byte
}

// Failed carries the reason a request could not be forwarded.
type Failed struct {
	Reason error
}

func (Forwarded) isOutcome() {}
func (Failed) isOutcome()    {}

// ResponseDirective tells the host server what to send back to the client.
type ResponseDirective struct {
	Status  int
	Headers Headers
	Body    []byte
}
