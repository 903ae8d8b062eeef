package identity

import (
	"sync"

	"personalcalendar/internal/domain"
)

// Provider is an in-process domain.IdentityProvider. Subscribers are
// notified synchronously, in registration order, while the change is held
// under the lock so owner switches cannot interleave.
type Provider struct {
	mu      sync.Mutex
	current string
	subs    []func(ownerID string)
}

func NewProvider() *Provider {
	return &Provider{}
}

var _ domain.IdentityProvider = (*Provider)(nil)

func (p *Provider) Set(ownerID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ownerID == p.current {
		return
	}
	p.current = ownerID
	for _, fn := range p.subs {
		fn(ownerID)
	}
}

func (p *Provider) Clear() {
	p.Set("")
}

func (p *Provider) Current() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current != ""
}

func (p *Provider) Subscribe(fn func(ownerID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}
