package catalog

import (
	"sync"

	"github.com/charmbracelet/log"
)

/*
Registry is the in-memory set of discovered agents, keyed by name. Entries
live as long as the process; there is no eviction and no persistence. Reads
always return copies in insertion order.
*/
type Registry struct {
	mu     sync.RWMutex
	agents map[string]AgentRecord
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		agents: make(map[string]AgentRecord),
	}
}

/*
Upsert inserts record, or replaces the record with the same name in place.
When a record was replaced, the previous value is returned with replaced set.
*/
func (registry *Registry) Upsert(record AgentRecord) (previous AgentRecord, replaced bool) {
	record = record.clone()

	registry.mu.Lock()
	defer registry.mu.Unlock()

	previous, replaced = registry.agents[record.Name]

	if !replaced {
		registry.order = append(registry.order, record.Name)
	}

	registry.agents[record.Name] = record

	log.Debug("upserted agent", "name", record.Name, "endpoint", record.Endpoint, "replaced", replaced)

	return previous.clone(), replaced
}

/*
Get returns the record registered under name.
*/
func (registry *Registry) Get(name string) (AgentRecord, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	record, ok := registry.agents[name]

	if !ok {
		return AgentRecord{}, false
	}

	return record.clone(), true
}

/*
List returns every record in the order it was first registered.
*/
func (registry *Registry) List() []AgentRecord {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	agents := make([]AgentRecord, 0, len(registry.order))

	for _, name := range registry.order {
		agents = append(agents, registry.agents[name].clone())
	}

	return agents
}

/*
Len returns the number of registered agents.
*/
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	return len(registry.order)
}
