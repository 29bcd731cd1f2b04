package catalog

import (
	"slices"
	"time"
)

/*
AgentRecord is what the bridge knows about one remote agent after a
successful discovery.
*/
type AgentRecord struct {
	Name         string     `json:"name"`
	Endpoint     string     `json:"endpoint"`
	Capabilities []string   `json:"capabilities"`
	AuthType     string     `json:"auth_type"`
	DiscoveredAt *time.Time `json:"discovered_at,omitempty"`
}

/*
clone returns a deep copy so that registry state never aliases caller memory.
*/
func (record AgentRecord) clone() AgentRecord {
	record.Capabilities = slices.Clone(record.Capabilities)

	if record.Capabilities == nil {
		record.Capabilities = []string{}
	}

	if record.DiscoveredAt != nil {
		at := *record.DiscoveredAt
		record.DiscoveredAt = &at
	}

	return record
}
