package storage

import (
	"context"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/party"
)

// Storage loads shop content. Catalogs and party members are read-only
// resources; session state is never persisted.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Catalog operations
	ListCatalogs(ctx context.Context) (map[string]string, error)
	GetCatalog(ctx context.Context, filename string) (*catalog.Catalog, error)

	// Party operations (returns MemberSpec, not Member)
	// Use party.NewMember or party.NewRoster to build actors from the spec.
	GetMemberSpec(ctx context.Context, memberID string) (*party.MemberSpec, error)
	ListPartyMembers(ctx context.Context) ([]string, error)
}
