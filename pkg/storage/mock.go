package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/party"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu        sync.RWMutex
	catalogs  map[string]*catalog.Catalog
	members   map[string]*party.MemberSpec
	pingError error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		catalogs: make(map[string]*catalog.Catalog),
		members:  make(map[string]*party.MemberSpec),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
// Pass nil to make ping succeed again.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) ListCatalogs(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.catalogs))
	for filename, c := range m.catalogs {
		result[c.Name] = filename
	}
	return result, nil
}

// GetCatalog returns a copy so callers can mutate stock freely.
func (m *MockStorage) GetCatalog(ctx context.Context, filename string) (*catalog.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.catalogs[filename]
	if !exists {
		return nil, errors.New("catalog not found")
	}
	return c.Clone(), nil
}

// AddCatalog adds a catalog under filename.
func (m *MockStorage) AddCatalog(filename string, c *catalog.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogs[filename] = c
}

func (m *MockStorage) GetMemberSpec(ctx context.Context, memberID string) (*party.MemberSpec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spec, exists := m.members[memberID]
	if !exists {
		return nil, errors.New("party member not found")
	}
	return spec, nil
}

func (m *MockStorage) ListPartyMembers(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, 0, len(m.members))
	for id := range m.members {
		result = append(result, id)
	}
	sort.Strings(result)
	return result, nil
}

// AddMemberSpec adds a party member spec under memberID.
func (m *MockStorage) AddMemberSpec(memberID string, spec *party.MemberSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[memberID] = spec
}
