package a2a

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const (
	// AgentCardPath is where an agent publishes its self-description.
	AgentCardPath = "/.well-known/agent-card.json"
	// MessagePath is the JSON-RPC endpoint of an agent.
	MessagePath = "/api/a2a"

	DefaultAgentName = "Unknown"
	DefaultAuthType  = "none"
)

/*
AgentCard is the validated subset of an agent's well-known document that the
bridge relies on. All defaults have already been applied.
*/
type AgentCard struct {
	Name         string
	Capabilities []string
	AuthType     string
}

/*
cardDocument mirrors the wire shape. Every member is optional.
*/
type cardDocument struct {
	Name         *string         `json:"name"`
	Capabilities json.RawMessage `json:"capabilities"`
	Auth         *struct {
		Type string `json:"type"`
	} `json:"auth"`
	Authentication *struct {
		Schemes []string `json:"schemes"`
	} `json:"authentication"`
}

/*
ParseAgentCard turns a raw agent card document into an AgentCard, applying
the defaults for absent members. It returns a *DecodingError when the body
is not a JSON object or a member has an unusable type.
*/
func ParseAgentCard(data []byte) (AgentCard, error) {
	var doc cardDocument

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return AgentCard{}, &DecodingError{Message: "malformed agent card: expected a JSON object"}
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return AgentCard{}, &DecodingError{Message: "malformed agent card", Err: err}
	}

	card := AgentCard{
		Name:     DefaultAgentName,
		AuthType: DefaultAuthType,
	}

	if doc.Name != nil && *doc.Name != "" {
		card.Name = *doc.Name
	}

	capabilities, err := parseCapabilities(doc.Capabilities)

	if err != nil {
		return AgentCard{}, &DecodingError{Message: "malformed capabilities", Err: err}
	}

	card.Capabilities = capabilities

	switch {
	case doc.Auth != nil && doc.Auth.Type != "":
		card.AuthType = doc.Auth.Type
	case doc.Authentication != nil && len(doc.Authentication.Schemes) > 0:
		card.AuthType = doc.Authentication.Schemes[0]
	}

	return card, nil
}

/*
parseCapabilities accepts either a list of capability names, or the A2A
object form where each enabled capability maps to true. Object keys are
returned in document order.
*/
func parseCapabilities(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}

	switch raw[0] {
	case '[':
		capabilities := []string{}

		if err := json.Unmarshal(raw, &capabilities); err != nil {
			return nil, err
		}

		return capabilities, nil
	case '{':
		return enabledKeys(raw)
	}

	return nil, fmt.Errorf("expected a list or an object, got %s", raw)
}

func enabledKeys(raw json.RawMessage) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	// Consume the opening brace.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	capabilities := []string{}

	for decoder.More() {
		token, err := decoder.Token()

		if err != nil {
			return nil, err
		}

		key, _ := token.(string)

		var value any

		if err = decoder.Decode(&value); err != nil {
			return nil, err
		}

		if enabled, ok := value.(bool); ok && enabled {
			capabilities = append(capabilities, key)
		}
	}

	if _, err := decoder.Token(); err != nil && err != io.EOF {
		return nil, err
	}

	return capabilities, nil
}
