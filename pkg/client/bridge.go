package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"
	"github.com/theapemachine/a2a-bridge/pkg/bridge"
)

/*
ToolCallResult mirrors the envelope the bridge answers every tools/call with.
The payload is kept raw so callers can decode it into whatever they expect.
*/
type ToolCallResult struct {
	Success bool            `json:"success"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    string          `json:"kind,omitempty"`
}

/*
BridgeClient talks to a running bridge over its HTTP tool endpoint.
*/
type BridgeClient struct {
	url  string
	conn *fiberClient.Client
}

/*
NewBridgeClient creates a client for the tool endpoint at url, for example
http://localhost:3000/mcp.
*/
func NewBridgeClient(url string, timeout time.Duration) *BridgeClient {
	return &BridgeClient{
		url:  strings.TrimSuffix(url, "/"),
		conn: fiberClient.New().SetTimeout(timeout),
	}
}

/*
ListTools asks the bridge for its tool descriptors.
*/
func (client *BridgeClient) ListTools(ctx context.Context) ([]bridge.ToolDescriptor, error) {
	var out struct {
		Tools []bridge.ToolDescriptor `json:"tools"`
		Error string                  `json:"error"`
	}

	if err := client.post(ctx, map[string]any{"method": "tools/list"}, &out); err != nil {
		return nil, err
	}

	if out.Error != "" {
		return nil, fmt.Errorf("bridge rejected tools/list: %s", out.Error)
	}

	return out.Tools, nil
}

/*
CallTool invokes a tool by name. A failed invocation is not an error here;
inspect the Success field of the result.
*/
func (client *BridgeClient) CallTool(ctx context.Context, name string, arguments map[string]any) (ToolCallResult, error) {
	var out ToolCallResult

	log.Debug("calling bridge tool", "tool", name, "url", client.url)

	err := client.post(ctx, map[string]any{
		"method": "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": arguments,
		},
	}, &out)

	return out, err
}

/*
Discover is shorthand for the a2a_discover tool.
*/
func (client *BridgeClient) Discover(ctx context.Context, endpoint string) (ToolCallResult, error) {
	return client.CallTool(ctx, bridge.ToolDiscover, map[string]any{"endpoint": endpoint})
}

/*
ListAgents is shorthand for the a2a_list_agents tool.
*/
func (client *BridgeClient) ListAgents(ctx context.Context) (ToolCallResult, error) {
	return client.CallTool(ctx, bridge.ToolListAgents, map[string]any{})
}

/*
Send is shorthand for the a2a_send tool.
*/
func (client *BridgeClient) Send(ctx context.Context, agentName, message string) (ToolCallResult, error) {
	return client.CallTool(ctx, bridge.ToolSend, map[string]any{
		"agent_name": agentName,
		"message":    message,
	})
}

func (client *BridgeClient) post(ctx context.Context, body any, out any) error {
	resp, err := client.conn.Post(client.url, fiberClient.Config{
		Ctx:    ctx,
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   body,
	})

	if err != nil {
		return fmt.Errorf("failed to reach bridge at %s: %w", client.url, err)
	}

	defer resp.Close()

	if resp.StatusCode() != 200 {
		return fmt.Errorf("bridge returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode bridge response: %w", err)
	}

	return nil
}
