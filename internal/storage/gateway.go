package storage

import (
	"context"

	"github.com/dmitrijs2005/contactpro/internal/repositories/kv"
)

// Well-known keys.
const (
	KeyContacts = "contacts"
	KeyBackup   = "contactsBackup"
	KeyTheme    = "theme"
)

// Gateway reads and writes whole text documents by key.
type Gateway interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// KVGateway is a Gateway backed by a kv.Repository.
type KVGateway struct {
	repo kv.Repository
}

func NewKVGateway(repo kv.Repository) *KVGateway {
	return &KVGateway{repo: repo}
}

func (g *KVGateway) Get(ctx context.Context, key string) (string, bool, error) {
	return g.repo.Get(ctx, key)
}

func (g *KVGateway) Set(ctx context.Context, key string, value string) error {
	return g.repo.Set(ctx, key, value)
}
