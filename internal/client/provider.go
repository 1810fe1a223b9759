// Package client yields the shared API client used by every command,
// built lazily so commands that never touch the network (pure guard
// redirects, validation failures) pay nothing.
package client

import (
	"sync"

	"github.com/helpdesk-tools/deskctl/internal/api"
	"github.com/helpdesk-tools/deskctl/internal/session"
)

// Provider hands out one API client per process, bound to the session
// store so the stored credential rides on every private call.
type Provider struct {
	serverURL string
	sessions  session.Store

	once sync.Once
	api  *api.Client
}

// NewProvider constructs a Provider for the given server URL.
func NewProvider(serverURL string, sessions session.Store) *Provider {
	return &Provider{serverURL: serverURL, sessions: sessions}
}

// API returns the shared client, constructing it on first use.
func (p *Provider) API() *api.Client {
	p.once.Do(func() {
		p.api = api.New(p.serverURL, p.sessions)
	})
	return p.api
}

// Sessions exposes the session store backing the provider.
func (p *Provider) Sessions() session.Store {
	return p.sessions
}

// ServerURL reports the server the provider is bound to.
func (p *Provider) ServerURL() string {
	return p.serverURL
}
