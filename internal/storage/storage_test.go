package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `{
  "name": "General Goods",
  "kind": "items",
  "entries": [
    {"id": "herb", "name": "Medical Herb", "buy_price": 10, "sell_price": 5, "purchasable": true, "stock": 5, "allowed_users": ["randi", "purim", "popoi"]},
    {"id": "faerie", "name": "Faerie Walnut", "buy_price": 500, "sell_price": 250, "purchasable": false, "stock": 0}
  ]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStorage(dir, quietLogger()), dir
}

func TestFileStorage_Ping(t *testing.T) {
	st, dir := newTestStorage(t)
	ctx := context.Background()

	assert.Error(t, st.Ping(ctx), "catalogs directory missing")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "catalogs"), 0o755))
	assert.NoError(t, st.Ping(ctx))
	assert.NoError(t, st.Close())
}

func TestFileStorage_GetCatalog(t *testing.T) {
	st, dir := newTestStorage(t)
	ctx := context.Background()
	writeFile(t, filepath.Join(dir, "catalogs", "items.json"), itemsJSON)

	c, err := st.GetCatalog(ctx, "items.json")
	require.NoError(t, err)
	assert.Equal(t, "General Goods", c.Name)
	assert.Equal(t, catalog.KindItems, c.Kind)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "$10", c.At(0).PriceLabel())
	assert.Equal(t, "$ -", c.At(1).PriceLabel())
	assert.True(t, c.At(0).Allows(catalog.Popoi))
}

func TestFileStorage_GetCatalog_Errors(t *testing.T) {
	st, dir := newTestStorage(t)
	ctx := context.Background()

	_, err := st.GetCatalog(ctx, "missing.json")
	assert.EqualError(t, err, "catalog not found: missing.json")

	writeFile(t, filepath.Join(dir, "catalogs", "broken.json"), `{"name": `)
	_, err = st.GetCatalog(ctx, "broken.json")
	assert.Error(t, err)

	writeFile(t, filepath.Join(dir, "catalogs", "dupes.json"), `{
	  "name": "Dupes", "kind": "items",
	  "entries": [{"id": "a", "name": "A"}, {"id": "a", "name": "B"}]
	}`)
	_, err = st.GetCatalog(ctx, "dupes.json")
	assert.ErrorContains(t, err, "invalid catalog dupes.json")
}

func TestFileStorage_ListCatalogs(t *testing.T) {
	st, dir := newTestStorage(t)
	ctx := context.Background()
	writeFile(t, filepath.Join(dir, "catalogs", "items.json"), itemsJSON)
	writeFile(t, filepath.Join(dir, "catalogs", "equipment.json"), `{"name": "Arms and Armor", "kind": "equipment", "entries": []}`)
	writeFile(t, filepath.Join(dir, "catalogs", "broken.json"), `nope`)
	writeFile(t, filepath.Join(dir, "catalogs", "README.md"), `ignored`)

	list, err := st.ListCatalogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"General Goods":  "items.json",
		"Arms and Armor": "equipment.json",
	}, list)
}

func TestFileStorage_Party(t *testing.T) {
	st, dir := newTestStorage(t)
	ctx := context.Background()

	ids, err := st.ListPartyMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	specs, err := LoadParty(ctx, st)
	require.NoError(t, err)
	assert.Nil(t, specs)

	writeFile(t, filepath.Join(dir, "party", "randi.json"), `{"name": "Randi", "user_type": "randi", "class": "Fighter", "max_hp": 14, "ac": 15}`)
	writeFile(t, filepath.Join(dir, "party", "popoi.json"), `{"name": "Popoi", "user_type": "popoi", "class": "Sprite", "max_hp": 8, "ac": 12}`)

	ids, err = st.ListPartyMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"popoi", "randi"}, ids)

	spec, err := st.GetMemberSpec(ctx, "randi")
	require.NoError(t, err)
	assert.Equal(t, "randi", spec.ID, "ID comes from the filename")
	assert.Equal(t, catalog.Randi, spec.UserType)
	assert.Equal(t, 15, spec.AC)

	specs, err = LoadParty(ctx, st)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "popoi", specs[0].ID)

	_, err = st.GetMemberSpec(ctx, "purim")
	assert.Error(t, err)
}

func TestFileStorage_ShippedContent(t *testing.T) {
	st := NewFileStorage(filepath.Join("..", "..", "data"), quietLogger())
	ctx := context.Background()
	require.NoError(t, st.Ping(ctx))

	items, err := st.GetCatalog(ctx, "items.json")
	require.NoError(t, err)
	assert.Equal(t, catalog.KindItems, items.Kind)
	assert.True(t, items.Paged(), "items list is long enough to page")

	equipment, err := st.GetCatalog(ctx, "equipment.json")
	require.NoError(t, err)
	assert.Equal(t, catalog.KindEquipment, equipment.Kind)

	specs, err := LoadParty(ctx, st)
	require.NoError(t, err)
	assert.Len(t, specs, 3)
}
