package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/a2a-bridge/pkg/a2a"
)

/*
CardFetcher retrieves the agent card published at an endpoint.
*a2a.Client satisfies it.
*/
type CardFetcher interface {
	FetchAgentCard(ctx context.Context, endpoint string) (a2a.AgentCard, error)
}

/*
Discoverer turns endpoints into AgentRecords and registers them.
*/
type Discoverer struct {
	registry *Registry
	fetcher  CardFetcher
	now      func() time.Time

	// serialises stamping and upserting so discovery times only move forward.
	mu sync.Mutex
}

type DiscovererOption func(*Discoverer)

/*
WithClock replaces the wall clock used to stamp discoveries.
*/
func WithClock(now func() time.Time) DiscovererOption {
	return func(discoverer *Discoverer) {
		discoverer.now = now
	}
}

func NewDiscoverer(registry *Registry, fetcher CardFetcher, opts ...DiscovererOption) *Discoverer {
	discoverer := &Discoverer{
		registry: registry,
		fetcher:  fetcher,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(discoverer)
	}

	return discoverer
}

/*
Discover fetches the agent card at endpoint and upserts the resulting record.
Any failure is logged and reported as a miss; the registry is left untouched
and nothing is retried.
*/
func (discoverer *Discoverer) Discover(ctx context.Context, endpoint string) (AgentRecord, bool) {
	card, err := discoverer.fetcher.FetchAgentCard(ctx, endpoint)

	if err != nil {
		log.Error("failed to discover agent", "endpoint", endpoint, "error", err)
		return AgentRecord{}, false
	}

	discoverer.mu.Lock()
	defer discoverer.mu.Unlock()

	at := discoverer.stamp(card.Name)

	record := AgentRecord{
		Name:         card.Name,
		Endpoint:     endpoint,
		Capabilities: card.Capabilities,
		AuthType:     card.AuthType,
		DiscoveredAt: &at,
	}

	previous, replaced := discoverer.registry.Upsert(record)

	if replaced && previous.Endpoint != endpoint {
		log.Warn(
			"agent name collision, replacing record",
			"name", record.Name,
			"previous", previous.Endpoint,
			"endpoint", endpoint,
		)
	}

	log.Info("discovered agent", "name", record.Name, "endpoint", endpoint)

	return record.clone(), true
}

/*
stamp returns the discovery time for name, strictly after any earlier stamp.
*/
func (discoverer *Discoverer) stamp(name string) time.Time {
	at := discoverer.now()

	if previous, ok := discoverer.registry.Get(name); ok && previous.DiscoveredAt != nil {
		if !at.After(*previous.DiscoveredAt) {
			at = previous.DiscoveredAt.Add(time.Nanosecond)
		}
	}

	return at
}
