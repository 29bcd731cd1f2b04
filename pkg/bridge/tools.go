package bridge

import (
	"maps"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	ToolDiscover   = "a2a_discover"
	ToolListAgents = "a2a_list_agents"
	ToolSend       = "a2a_send"
)

/*
ToolDescriptor declares one callable tool and the arguments it expects.
*/
type ToolDescriptor struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  mcp.ToolInputSchema `json:"parameters"`

	tool mcp.Tool
}

/*
MCPTool returns the descriptor as an MCP tool definition.
*/
func (descriptor ToolDescriptor) MCPTool() mcp.Tool {
	tool := descriptor.tool
	tool.InputSchema = cloneSchema(tool.InputSchema)

	return tool
}

/*
clone returns a copy sharing no maps or slices with descriptor.
*/
func (descriptor ToolDescriptor) clone() ToolDescriptor {
	descriptor.Parameters = cloneSchema(descriptor.Parameters)
	descriptor.tool.InputSchema = cloneSchema(descriptor.tool.InputSchema)

	return descriptor
}

/*
missing returns the required keys absent from args, in declaration order.
*/
func (descriptor ToolDescriptor) missing(args map[string]any) []string {
	var absent []string

	for _, key := range descriptor.Parameters.Required {
		if _, ok := args[key]; !ok {
			absent = append(absent, key)
		}
	}

	return absent
}

func newDescriptor(tool mcp.Tool) ToolDescriptor {
	return ToolDescriptor{
		Name:        tool.Name,
		Description: tool.Description,
		Parameters:  cloneSchema(tool.InputSchema),
		tool:        tool,
	}
}

func cloneSchema(schema mcp.ToolInputSchema) mcp.ToolInputSchema {
	schema.Required = slices.Clone(schema.Required)
	schema.Properties = cloneValue(schema.Properties).(map[string]any)

	return schema
}

/*
cloneValue deep-copies the maps and slices a JSON schema is built from.
*/
func cloneValue(value any) any {
	switch value := value.(type) {
	case map[string]any:
		if value == nil {
			return value
		}

		out := maps.Clone(value)

		for key, inner := range out {
			out[key] = cloneValue(inner)
		}

		return out
	case []any:
		out := slices.Clone(value)

		for i, inner := range out {
			out[i] = cloneValue(inner)
		}

		return out
	case []string:
		return slices.Clone(value)
	}

	return value
}

/*
descriptors builds the fixed tool set exposed by every bridge.
*/
func descriptors() []ToolDescriptor {
	return []ToolDescriptor{
		newDescriptor(mcp.NewTool(
			ToolDiscover,
			mcp.WithDescription("Discover an A2A agent at a given endpoint"),
			mcp.WithString(
				"endpoint",
				mcp.Description("The base URL of the A2A agent"),
				mcp.Required(),
			),
		)),
		newDescriptor(mcp.NewTool(
			ToolListAgents,
			mcp.WithDescription("List all discovered A2A agents"),
		)),
		newDescriptor(mcp.NewTool(
			ToolSend,
			mcp.WithDescription("Send a message to a discovered A2A agent"),
			mcp.WithString(
				"agent_name",
				mcp.Description("Name of the discovered agent"),
				mcp.Required(),
			),
			mcp.WithString(
				"message",
				mcp.Description("Message to send"),
				mcp.Required(),
			),
		)),
	}
}
