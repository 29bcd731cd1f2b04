package bridge

import (
	"fmt"
	"strings"

	"github.com/cohesivestack/valgo"
)

/*
Call is a parsed tool invocation. It is one of DiscoverCall, ListAgentsCall
or SendCall.
*/
type Call interface {
	Tool() string
	isCall()
}

type DiscoverCall struct {
	Endpoint string
}

type ListAgentsCall struct{}

type SendCall struct {
	AgentName string
	Message   string
}

func (DiscoverCall) Tool() string   { return ToolDiscover }
func (ListAgentsCall) Tool() string { return ToolListAgents }
func (SendCall) Tool() string       { return ToolSend }

func (DiscoverCall) isCall()   {}
func (ListAgentsCall) isCall() {}
func (SendCall) isCall()       {}

// UnknownToolError is returned for a tool name outside the fixed tool set.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ArgumentError is returned when the arguments do not satisfy the tool's schema.
type ArgumentError struct {
	Tool    string
	Missing []string
	Key     string
	Reason  string
}

func (e *ArgumentError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf(
			"missing required argument(s) for %s: %s", e.Tool, strings.Join(e.Missing, ", "),
		)
	}

	return fmt.Sprintf("invalid argument %q for %s: %s", e.Key, e.Tool, e.Reason)
}

/*
parseCall checks args against the descriptor before building the typed call,
so that no handler ever sees an incomplete argument set.
*/
func parseCall(descriptor ToolDescriptor, args map[string]any) (Call, error) {
	if missing := descriptor.missing(args); len(missing) > 0 {
		return nil, &ArgumentError{Tool: descriptor.Name, Missing: missing}
	}

	switch descriptor.Name {
	case ToolDiscover:
		endpoint, err := stringArg(descriptor.Name, args, "endpoint", true)

		if err != nil {
			return nil, err
		}

		return DiscoverCall{Endpoint: endpoint}, nil
	case ToolListAgents:
		return ListAgentsCall{}, nil
	case ToolSend:
		agentName, err := stringArg(descriptor.Name, args, "agent_name", true)

		if err != nil {
			return nil, err
		}

		message, err := stringArg(descriptor.Name, args, "message", false)

		if err != nil {
			return nil, err
		}

		return SendCall{AgentName: agentName, Message: message}, nil
	}

	return nil, &UnknownToolError{Name: descriptor.Name}
}

/*
stringArg reads a string argument. Messages may be empty; names and
endpoints may not.
*/
func stringArg(tool string, args map[string]any, key string, nonBlank bool) (string, error) {
	value, ok := args[key].(string)

	if !ok {
		return "", &ArgumentError{Tool: tool, Key: key, Reason: "must be a string"}
	}

	if nonBlank && !valgo.Is(valgo.String(value, key).Not().Blank()).Valid() {
		return "", &ArgumentError{Tool: tool, Key: key, Reason: "must not be blank"}
	}

	return value, nil
}
