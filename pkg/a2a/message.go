package a2a

import "strings"

// Roles a message can be sent as.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

/*
Message represents all non‑artifact communication between client & agent.
*/
type Message struct {
	Role     string         `json:"role"` // "user" or "agent"
	Parts    []Part         `json:"parts"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewTextMessage(role string, text string) *Message {
	return &Message{
		Role: role,
		Parts: []Part{
			NewTextPart(text),
		},
	}
}

/*
SendParams is the params object of a message/send call.
*/
type SendParams struct {
	Message *Message `json:"message"`
}

func (msg *Message) String() string {
	var sb strings.Builder

	for _, part := range msg.Parts {
		if part.Kind == PartKindText {
			sb.WriteString(part.Text)
		}
	}

	return sb.String()
}
