package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Class: ErrorClassClient, Message: "not found"}
	want := "easydata client error (status 404): not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := &APIError{Class: ErrorClassNetwork, Message: "unable to connect to API", Err: errors.New("dial tcp: refused")}
	if got := wrapped.Error(); got != "easydata network error (status 0): unable to connect to API: dial tcp: refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &APIError{Class: ErrorClassNetwork, Message: "request failed", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorClass
	}{
		{400, ErrorClassClient},
		{401, ErrorClassClient},
		{404, ErrorClassClient},
		{499, ErrorClassClient},
		{500, ErrorClassServer},
		{502, ErrorClassServer},
		{503, ErrorClassServer},
		{200, ""},
		{302, ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.want {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		class ErrorClass
		want  bool
	}{
		{ErrorClassClient, false},
		{ErrorClassServer, true},
		{ErrorClassNetwork, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := shouldRetry(tt.class); got != tt.want {
			t.Errorf("shouldRetry(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestClassOf(t *testing.T) {
	apiErr := &APIError{Class: ErrorClassServer}
	if got := classOf(apiErr); got != ErrorClassServer {
		t.Errorf("classOf(APIError) = %q, want server", got)
	}

	wrapped := fmt.Errorf("fetch grid: %w", apiErr)
	if got := classOf(wrapped); got != ErrorClassServer {
		t.Errorf("classOf(wrapped) = %q, want server", got)
	}

	if got := classOf(errors.New("plain")); got != "" {
		t.Errorf("classOf(plain) = %q, want empty class", got)
	}
}
