package auth

import (
	"context"
	"sync"

	"github.com/Luismorlan/logosarena/model"
	"github.com/pkg/errors"
)

var ErrInvalidToken = errors.New("invalid or expired session")

// Provider is the auth collaborator. It resolves a session token into the
// identity it belongs to.
type Provider interface {
	GetUser(ctx context.Context, token string) (*model.Identity, error)
	SignOut(ctx context.Context, token string) error
}

// FakeProvider accepts the tokens registered with Add.
type FakeProvider struct {
	mu     sync.Mutex
	tokens map[string]*model.Identity
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{tokens: map[string]*model.Identity{}}
}

func (p *FakeProvider) Add(token string, ident *model.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = ident
}

func (p *FakeProvider) GetUser(ctx context.Context, token string) (*model.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ident, ok := p.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	c := *ident
	return &c, nil
}

func (p *FakeProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
	return nil
}
