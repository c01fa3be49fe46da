package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/shop-engine/pkg/party"
	"github.com/jwebster45206/shop-engine/pkg/storage"
)

func (f *FileStorage) GetMemberSpec(ctx context.Context, memberID string) (*party.MemberSpec, error) {
	path := filepath.Join(f.dataDir, partyDir, memberID+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read party member file: %w", err)
	}

	var spec party.MemberSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal party member spec: %w", err)
	}

	// The filename is the ID.
	spec.ID = memberID

	return &spec, nil
}

// ListPartyMembers returns member IDs in sorted order, or an empty list when
// the party directory does not exist.
func (f *FileStorage) ListPartyMembers(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dataDir, partyDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read party directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	sort.Strings(ids)

	return ids, nil
}

// LoadParty loads every member spec in the data directory. It returns nil
// with no error when the directory holds none.
func LoadParty(ctx context.Context, s storage.Storage) ([]*party.MemberSpec, error) {
	ids, err := s.ListPartyMembers(ctx)
	if err != nil {
		return nil, err
	}
	specs := make([]*party.MemberSpec, 0, len(ids))
	for _, id := range ids {
		spec, err := s.GetMemberSpec(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load party member %s: %w", id, err)
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, nil
	}
	return specs, nil
}
