package model

import "testing"

func TestParseMethod(t *testing.T) {
	tests := []struct {
		token string
		want  Method
	}{
		{"GET", MethodGet},
		{"POST", MethodPost},
		{"HEAD", MethodHead},
		{"PUT", MethodPut},
		{"DELETE", MethodDelete},
		{"TRACE", MethodTrace},
		{"OPTIONS", MethodOptions},
		{"PATCH", MethodUnsupported},
		{"CONNECT", MethodUnsupported},
		{"get", MethodUnsupported},
		{"", MethodUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ParseMethod(tt.token); got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestMethod_RoundTrip(t *testing.T) {
	for _, token := range SupportedMethods {
		if got := ParseMethod(token).String(); got != token {
			t.Errorf("ParseMethod(%q).String() = %q", token, got)
		}
	}
	if got := MethodUnsupported.String(); got != "UNSUPPORTED" {
		t.Errorf("MethodUnsupported.String() = %q", got)
	}
}

func TestMethod_CarriesBody(t *testing.T) {
	for _, token := range SupportedMethods {
		m := ParseMethod(token)
		want := token == "POST" || token == "PUT"
		if m.CarriesBody() != want {
			t.Errorf("%s.CarriesBody() = %v, want %v", token, m.CarriesBody(), want)
		}
	}
}
