package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/theapemachine/a2a-bridge/pkg/catalog"
)

/*
Kind classifies a failed invocation.
*/
type Kind string

const (
	KindUnknownTool      Kind = "unknown_tool"
	KindInvalidArguments Kind = "invalid_arguments"
	KindDiscoveryFailed  Kind = "discovery_failed"
	KindUnknownAgent     Kind = "unknown_agent"
	KindRemoteFailure    Kind = "remote_failure"
	KindTimeout          Kind = "timeout"
	KindInternal         Kind = "internal"
)

/*
Result is the envelope returned by every tool invocation. A Result holds
either a payload (Success set) or an error message and Kind, never both.
Build it with Succeed or Fail.
*/
type Result struct {
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

/*
DiscoverPayload is the payload of a successful a2a_discover call.
*/
type DiscoverPayload struct {
	Agent   catalog.AgentRecord `json:"agent"`
	Message string              `json:"message"`
}

/*
ListPayload is the payload of an a2a_list_agents call.
*/
type ListPayload struct {
	Agents []catalog.AgentRecord `json:"agents"`
	Count  int                   `json:"count"`
}

/*
Succeed wraps payload in a successful Result. A nil payload becomes an empty
JSON object.
*/
func Succeed(payload any) Result {
	if payload == nil {
		payload = json.RawMessage(`{}`)
	}

	return Result{Success: true, Payload: payload}
}

/*
Fail builds a failed Result of the given kind.
*/
func Fail(kind Kind, format string, args ...any) Result {
	message := fmt.Sprintf(format, args...)

	if message == "" {
		message = "unknown error"
	}

	if kind == "" {
		kind = KindInternal
	}

	return Result{Error: message, Kind: kind}
}
