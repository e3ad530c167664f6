// Package livepreview links a running editor session to the generator over
// socket.io.
//
// The editor emits graph:snapshot with a project document and node:preview
// with a single node. Each request is answered with source:generated or
// node:snippet carrying {requestId, sourceText, diagnostics}.
package livepreview

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultConnectTimeout bounds the initial connection attempt.
const DefaultConnectTimeout = 15 * time.Second

// Options describe the editor endpoint.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Dial connects to the editor and waits for the handshake.
func Dial(ctx context.Context, opts Options) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx).With("component", "livepreview", "url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("editor URL %q must include a scheme and host", opts.URL)
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to editor.", "sid", io.Id())
		notify(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		notify(connectChan, err)
	})

	logger.Debug("Connecting to editor...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

// notify delivers the first handshake outcome; later ones are dropped so a
// late connect or connect_error callback never blocks.
func notify(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// Run connects to the editor and answers requests until ctx is canceled or
// the editor disconnects.
func Run(ctx context.Context, a *app.App, opts Options) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx).With("component", "livepreview")

	io, err := Dial(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("Disconnecting from editor")
		io.Disconnect()
	}()

	h := NewHandler(a)
	io.On(types.EventName(EventGraphSnapshot), func(args ...any) {
		reply := h.Snapshot(ctx, args...)
		logReply(ctx, EventGraphSnapshot, reply)
		io.Emit(EventSourceGenerated, reply)
	})
	io.On(types.EventName(EventNodePreview), func(args ...any) {
		reply := h.Preview(ctx, args...)
		logReply(ctx, EventNodePreview, reply)
		io.Emit(EventNodeSnippet, reply)
	})

	disconnected := make(chan string, 1)
	io.On(types.EventName("disconnect"), func(args ...any) {
		reason := ""
		if len(args) > 0 {
			reason = fmt.Sprint(args[0])
		}
		select {
		case disconnected <- reason:
		default:
		}
	})

	logger.Info("Live preview ready.", "namespace", opts.Namespace)
	select {
	case <-ctx.Done():
		return nil
	case reason := <-disconnected:
		return fmt.Errorf("editor disconnected: %s", reason)
	}
}

func logReply(ctx context.Context, event string, r Reply) {
	logger := ctxlog.FromContext(ctx)
	if r.Error != "" {
		logger.Warn("Rejected live preview request.", "event", event, "requestId", r.RequestID, "error", r.Error)
		return
	}
	logger.Debug("Answered live preview request.", "event", event, "requestId", r.RequestID, "diagnostics", len(r.Diagnostics))
}
