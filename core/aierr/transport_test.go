package aierr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want TransportFailure
	}{
		{"nil", nil, TransportNone},
		{"deadline", fmt.Errorf("sending: %w", context.DeadlineExceeded), TransportTimeout},
		{"net timeout", &url.Error{Op: "Post", URL: "http://x", Err: timeoutErr{}}, TransportTimeout},
		{"dns", &url.Error{Op: "Post", URL: "http://x", Err: &net.DNSError{Err: "no such host", Name: "x"}}, TransportConnection},
		{"dial refused", &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}, TransportConnection},
		{"bare reset", fmt.Errorf("read: %w", syscall.ECONNRESET), TransportConnection},
		{"url eof", &url.Error{Op: "Post", URL: "http://x", Err: io.EOF}, TransportConnection},
		{"canceled", &url.Error{Op: "Post", URL: "http://x", Err: context.Canceled}, TransportNone},
		{"other", errors.New("error marshaling body"), TransportNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTransport(tt.err))
		})
	}
}
