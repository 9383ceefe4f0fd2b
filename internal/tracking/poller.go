package tracking

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"bussp-service/internal/routes"
)

var errLineUnknown = errors.New("no matching route")

// Poller periodically fetches positions for every line that has hub
// subscribers and broadcasts the snapshots.
type Poller struct {
	provider routes.Provider
	hub      *Hub
	interval time.Duration

	mu       sync.Mutex
	resolved map[string]routes.Route // line -> provider route, resolved once
}

// NewPoller creates a poller over the given provider and hub.
func NewPoller(provider routes.Provider, hub *Hub, interval time.Duration) *Poller {
	return &Poller{
		provider: provider,
		hub:      hub,
		interval: interval,
		resolved: make(map[string]routes.Route),
	}
}

// Start runs the poll loop in a background goroutine until ctx is done.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

func (p *Poller) poll(ctx context.Context) {
	for _, line := range p.hub.Lines() {
		rt, err := p.resolve(ctx, line)
		if err != nil {
			log.Printf("[tracking] cannot resolve line %s: %v", line, err)
			continue
		}

		positions, err := p.provider.Positions(ctx, []routes.Route{rt})
		if err != nil {
			log.Printf("[tracking] positions for line %s: %v", line, err)
			continue
		}

		p.hub.Broadcast(line, positions)
	}
}

func (p *Poller) resolve(ctx context.Context, line string) (routes.Route, error) {
	p.mu.Lock()
	rt, ok := p.resolved[line]
	p.mu.Unlock()
	if ok {
		return rt, nil
	}

	matches, err := p.provider.Search(ctx, line)
	if err != nil {
		return routes.Route{}, err
	}
	if len(matches) == 0 {
		return routes.Route{}, errLineUnknown
	}

	p.mu.Lock()
	p.resolved[line] = matches[0]
	p.mu.Unlock()
	return matches[0], nil
}
