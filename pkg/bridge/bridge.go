package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/theapemachine/a2a-bridge/pkg/a2a"
	"github.com/theapemachine/a2a-bridge/pkg/catalog"
	"github.com/theapemachine/a2a-bridge/pkg/jsonrpc"
	"github.com/theapemachine/a2a-bridge/pkg/metrics"
)

/*
MessageSender delivers a message to the agent at endpoint.
*/
type MessageSender interface {
	SendMessage(ctx context.Context, endpoint string, msg *a2a.Message) (*jsonrpc.Response, error)
}

/*
Transport is everything the bridge needs from the network. *a2a.Client
satisfies it.
*/
type Transport interface {
	catalog.CardFetcher
	MessageSender
}

/*
Bridge exposes the fixed tool set and translates each invocation into
agent-to-agent calls. Each Bridge owns its own registry, so independent
bridges never share agents.
*/
type Bridge struct {
	registry   *catalog.Registry
	discoverer *catalog.Discoverer
	sender     MessageSender
	metrics    *metrics.InvocationMetrics
	tools      []ToolDescriptor
	index      map[string]ToolDescriptor
}

type Option func(*options)

type options struct {
	discovery []catalog.DiscovererOption
}

/*
WithDiscoveryOptions passes options through to the discovery client.
*/
func WithDiscoveryOptions(opts ...catalog.DiscovererOption) Option {
	return func(o *options) {
		o.discovery = append(o.discovery, opts...)
	}
}

func New(transport Transport, opts ...Option) *Bridge {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	registry := catalog.NewRegistry()
	tools := descriptors()
	index := make(map[string]ToolDescriptor, len(tools))

	for _, tool := range tools {
		index[tool.Name] = tool
	}

	return &Bridge{
		registry:   registry,
		discoverer: catalog.NewDiscoverer(registry, transport, o.discovery...),
		sender:     transport,
		metrics:    metrics.NewInvocationMetrics(),
		tools:      tools,
		index:      index,
	}
}

/*
Tools returns the tool descriptors in declaration order.
*/
func (bridge *Bridge) Tools() []ToolDescriptor {
	tools := make([]ToolDescriptor, len(bridge.tools))

	for i, tool := range bridge.tools {
		tools[i] = tool.clone()
	}

	return tools
}

/*
Registry exposes the agents discovered through this bridge.
*/
func (bridge *Bridge) Registry() *catalog.Registry {
	return bridge.registry
}

/*
Metrics exposes counters over every invocation made through this bridge.
*/
func (bridge *Bridge) Metrics() *metrics.InvocationMetrics {
	return bridge.metrics
}

/*
Parse resolves name and validates arguments into a typed Call.
*/
func (bridge *Bridge) Parse(name string, arguments map[string]any) (Call, error) {
	descriptor, ok := bridge.index[name]

	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	return parseCall(descriptor, arguments)
}

/*
Invoke runs the named tool. It never returns an error and never panics:
every failure is reported through the Result.
*/
func (bridge *Bridge) Invoke(ctx context.Context, name string, arguments map[string]any) (result Result) {
	logger := log.With("invocation", uuid.NewString(), "tool", name)
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool invocation panicked", "panic", r)
			result = Fail(KindInternal, "internal error while invoking %s", name)
		}

		bridge.metrics.RecordInvocation(name, result.Success, string(result.Kind), time.Since(started))
	}()

	call, err := bridge.Parse(name, arguments)

	if err != nil {
		logger.Warn("rejected tool call", "error", err)
		return failure(err)
	}

	switch call := call.(type) {
	case DiscoverCall:
		result = bridge.discover(ctx, call)
	case ListAgentsCall:
		result = bridge.listAgents()
	case SendCall:
		result = bridge.send(ctx, call)
	default:
		result = Fail(KindInternal, "no handler for %s", call.Tool())
	}

	logger.Info("tool invoked", "success", result.Success, "kind", result.Kind)

	return result
}

func (bridge *Bridge) discover(ctx context.Context, call DiscoverCall) Result {
	record, ok := bridge.discoverer.Discover(ctx, call.Endpoint)

	if !ok {
		return Fail(KindDiscoveryFailed, "failed to discover agent at %s", call.Endpoint)
	}

	return Succeed(DiscoverPayload{
		Agent:   record,
		Message: fmt.Sprintf("Discovered agent: %s", record.Name),
	})
}

func (bridge *Bridge) listAgents() Result {
	agents := bridge.registry.List()

	return Succeed(ListPayload{
		Agents: agents,
		Count:  len(agents),
	})
}

func (bridge *Bridge) send(ctx context.Context, call SendCall) Result {
	record, ok := bridge.registry.Get(call.AgentName)

	if !ok {
		return Fail(KindUnknownAgent, "agent %s not discovered", call.AgentName)
	}

	return Unwrap(bridge.sender.SendMessage(ctx, record.Endpoint, Wrap(call.Message)))
}

func failure(err error) Result {
	switch err.(type) {
	case *UnknownToolError:
		return Fail(KindUnknownTool, "%s", err)
	case *ArgumentError:
		return Fail(KindInvalidArguments, "%s", err)
	}

	return Fail(KindInternal, "%s", err)
}
