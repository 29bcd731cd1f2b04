package a2a

import "encoding/json"

/*
Part is a discriminated union over the content blocks of a message. Only the
text variant is produced by the bridge; Data is carried so that structured
parts sent back by agents survive a round-trip.
*/
type Part struct {
	Kind PartKind `json:"kind"`

	// Exactly one of the following should be populated depending on Kind.
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// PartKind is the discriminator for a Part union.
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindData PartKind = "data"
)

func NewTextPart(text string) Part {
	return Part{
		Kind: PartKindText,
		Text: text,
	}
}

/*
MarshalJSON always writes the text member of a text part, even when empty,
and leaves it out for every other kind.
*/
func (part Part) MarshalJSON() ([]byte, error) {
	type wire Part

	if part.Kind != PartKindText {
		return json.Marshal(wire(part))
	}

	return json.Marshal(struct {
		wire
		Text string `json:"text"`
	}{wire(part), part.Text})
}
