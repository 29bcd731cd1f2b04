package a2a

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"
	"github.com/theapemachine/a2a-bridge/pkg/jsonrpc"
	"github.com/valyala/fasthttp"
)

// DefaultTimeout bounds every outbound call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

/*
Client speaks the agent-to-agent protocol to any number of remote agents.
One Client is shared by all concurrent callers.
*/
type Client struct {
	transport *fasthttp.Client
	conn      *fiberClient.Client
	timeout   time.Duration
}

type ClientOption func(*Client)

/*
WithTimeout overrides the per-call deadline. Non-positive values are ignored.
*/
func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

/*
NewClient creates a new A2A client over its own connection pool. Call Close
when done to release idle connections.
*/
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		transport: &fasthttp.Client{Name: "a2a-bridge"},
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.conn = fiberClient.NewWithClient(client.transport).SetTimeout(client.timeout)

	return client
}

/*
Timeout returns the per-call deadline.
*/
func (client *Client) Timeout() time.Duration {
	return client.timeout
}

/*
FetchAgentCard retrieves and parses the well-known agent card published at
endpoint.
*/
func (client *Client) FetchAgentCard(ctx context.Context, endpoint string) (AgentCard, error) {
	url := resolve(endpoint, AgentCardPath)

	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	log.Debug("fetching agent card", "url", url)

	resp, err := client.conn.Get(url, fiberClient.Config{Ctx: ctx})

	if err != nil {
		return AgentCard{}, client.transportError(ctx, url, err)
	}

	defer resp.Close()

	if resp.StatusCode() != http.StatusOK {
		return AgentCard{}, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	return ParseAgentCard(resp.Body())
}

/*
SendMessage posts msg to the agent at endpoint as a message/send call and
returns the decoded JSON-RPC response. A JSON-RPC error member is not turned
into a Go error; the caller decides how to present it.
*/
func (client *Client) SendMessage(
	ctx context.Context, endpoint string, msg *Message,
) (*jsonrpc.Response, error) {
	url := resolve(endpoint, MessagePath)

	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	log.Debug("sending message", "url", url, "role", msg.Role, "parts", len(msg.Parts))

	resp, err := client.conn.Post(
		url,
		fiberClient.Config{
			Ctx: ctx,
			Header: map[string]string{
				"Content-Type": "application/json",
			},
			Body: jsonrpc.NewRequest("message/send", SendParams{Message: msg}),
		},
	)

	if err != nil {
		return nil, client.transportError(ctx, url, err)
	}

	defer resp.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	response, err := jsonrpc.DecodeResponse(resp.Body())

	if err != nil {
		return nil, &DecodingError{Message: "malformed JSON-RPC response", Err: err}
	}

	return response, nil
}

/*
Close releases the idle connections held by the client.
*/
func (client *Client) Close() {
	client.transport.CloseIdleConnections()
}

/*
transportError separates deadline expiry from every other transport failure.
*/
func (client *Client) transportError(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, fiberClient.ErrTimeoutOrCancel) ||
		errors.Is(err, fasthttp.ErrTimeout) {
		return &TimeoutError{URL: url, Timeout: client.timeout}
	}

	return &ConnectionError{URL: url, Err: err}
}

func resolve(endpoint, path string) string {
	return strings.TrimSuffix(endpoint, "/") + path
}
