package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/dialogue"
	"github.com/jwebster45206/shop-engine/pkg/party"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testCatalog(kind catalog.Kind, n int) *catalog.Catalog {
	c := &catalog.Catalog{Name: string(kind), Kind: kind}
	for i := 0; i < n; i++ {
		c.Entries = append(c.Entries, &catalog.Entry{
			ID:           fmt.Sprintf("%s_%d", kind, i),
			Name:         fmt.Sprintf("%s %d", kind, i),
			BuyPrice:     10 * (i + 1),
			SellPrice:    5 * (i + 1),
			Purchasable:  true,
			Stock:        3,
			AllowedUsers: []catalog.UserType{catalog.Randi},
			Description:  "A fine " + string(kind),
		})
	}
	return c
}

func newTestConsole(t *testing.T) (ShopConsole, *[]string) {
	t.Helper()
	ledger, err := shop.NewLedger(1000, 20, catalog.Randi)
	require.NoError(t, err)
	roster, err := party.NewRoster(party.DefaultSpecs())
	require.NoError(t, err)

	copied := &[]string{}
	ui, err := NewShopConsole(consoleDeps{
		Items:     testCatalog(catalog.KindItems, 8),
		Equipment: testCatalog(catalog.KindEquipment, 3),
		Ledger:    ledger,
		Roster:    roster,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Layout:    defaultShopLayout(),
		Clipboard: func(s string) error {
			*copied = append(*copied, s)
			return nil
		},
	})
	require.NoError(t, err)
	return ui, copied
}

// press feeds keys through Update and returns the model and the last command.
func press(t *testing.T, m ShopConsole, keys ...tea.KeyMsg) (ShopConsole, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var model tea.Model
		model, cmd = m.Update(k)
		m = model.(ShopConsole)
	}
	return m, cmd
}

func walkToMerchant(t *testing.T, m ShopConsole) ShopConsole {
	t.Helper()
	for i := 0; i < 20 && !m.inRange(); i++ {
		m, _ = press(t, m, runeKey('w'))
	}
	require.True(t, m.inRange())
	return m
}

func TestKeyMap_Action(t *testing.T) {
	k := defaultKeyMap()

	tests := []struct {
		name   string
		screen screen
		msg    tea.KeyMsg
		want   action
	}{
		{"lane up", screenLane, runeKey('w'), actionMoveUp},
		{"lane down", screenLane, runeKey('s'), actionMoveDown},
		{"lane talk", screenLane, runeKey('l'), actionTalk},
		{"lane esc quits", screenLane, tea.KeyMsg{Type: tea.KeyEsc}, actionQuit},
		{"dialogue buy", screenDialogue, runeKey('w'), actionChooseBuy},
		{"dialogue sell", screenDialogue, runeKey('s'), actionChooseSell},
		{"dialogue confirm", screenDialogue, runeKey('l'), actionConfirmChoice},
		{"shop navigate", screenShop, runeKey('s'), actionNavigateDown},
		{"shop less", screenShop, runeKey('a'), actionDecrease},
		{"shop more", screenShop, runeKey('d'), actionIncrease},
		{"shop confirm", screenShop, runeKey('k'), actionConfirm},
		{"shop items", screenShop, runeKey('q'), actionItemsTab},
		{"shop equipment", screenShop, runeKey('p'), actionEquipmentTab},
		{"shop buy", screenShop, runeKey('b'), actionBuyMode},
		{"shop sell", screenShop, runeKey('v'), actionSellMode},
		{"shop party", screenShop, tea.KeyMsg{Type: tea.KeyTab}, actionNextMember},
		{"shop copy", screenShop, runeKey('y'), actionCopy},
		{"shop leave", screenShop, tea.KeyMsg{Type: tea.KeyEsc}, actionLeave},
		{"shop talk ignored", screenShop, runeKey('l'), actionNone},
		{"farewell ignores keys", screenFarewell, runeKey('w'), actionNone},
		{"ctrl+c everywhere", screenFarewell, tea.KeyMsg{Type: tea.KeyCtrlC}, actionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.action(tt.screen, tt.msg))
		})
	}
}

func TestNewShopView_RejectsBadLayout(t *testing.T) {
	layout := defaultShopLayout()
	layout.Slots = 5
	_, err := newShopView(layout)
	assert.ErrorContains(t, err, "need 6")

	layout = defaultShopLayout()
	delete(layout.Styles, styleSelected)
	delete(layout.Styles, styleRestricted)
	_, err = newShopView(layout)
	assert.ErrorContains(t, err, "selected, restricted")

	layout = defaultShopLayout()
	layout.DetailWidth = 5
	_, err = newShopView(layout)
	assert.Error(t, err)

	_, err = newShopView(defaultShopLayout())
	assert.NoError(t, err)
}

func TestNewShopConsole_FailsFast(t *testing.T) {
	_, err := NewShopConsole(consoleDeps{})
	assert.Error(t, err)

	ledger, _ := shop.NewLedger(10, 10, catalog.Randi)
	roster, _ := party.NewRoster(party.DefaultSpecs())
	_, err = NewShopConsole(consoleDeps{
		Items:     testCatalog(catalog.KindItems, 1),
		Equipment: testCatalog(catalog.KindEquipment, 1),
		Ledger:    ledger,
		Roster:    roster,
		Layout:    shopLayout{Slots: 6, DetailWidth: 40},
	})
	assert.ErrorContains(t, err, "invalid shop layout")
}

func TestShopConsole_TalkRequiresRange(t *testing.T) {
	m, _ := newTestConsole(t)

	m, _ = press(t, m, runeKey('l'))
	assert.Equal(t, screenLane, m.screen(), "merchant is too far away")

	m = walkToMerchant(t, m)
	m, _ = press(t, m, runeKey('l'))
	assert.Equal(t, screenDialogue, m.screen())
	assert.Contains(t, m.View(), "Ah-ha! A customer!")

	before := m.player.Pos
	m, _ = press(t, m, runeKey('w'))
	assert.Equal(t, before, m.player.Pos, "movement is frozen while talking")
}

func TestShopConsole_BuyAndLeave(t *testing.T) {
	m, copied := newTestConsole(t)
	m = walkToMerchant(t, m)
	m, _ = press(t, m, runeKey('l'), runeKey('l'))
	require.Equal(t, screenShop, m.screen())
	require.NotNil(t, m.session)
	assert.Equal(t, shop.Buy, m.session.Mode())

	m, _ = press(t, m, runeKey('d'), runeKey('k'))
	assert.Equal(t, 2, m.ledger.Owned("items_0"))
	assert.Equal(t, 980, m.ledger.Money())
	assert.Contains(t, m.lastMessage, "Bought 2 items 0")
	assert.Contains(t, m.View(), "Money: $980")

	m, _ = press(t, m, runeKey('y'))
	require.Equal(t, []string{m.lastMessage}, *copied)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenFarewell, m.screen())
	assert.Nil(t, m.session)
	require.NotNil(t, cmd, "farewell schedules a hide")

	model, _ := m.Update(hideFarewellMsg{})
	m = model.(ShopConsole)
	assert.Equal(t, screenLane, m.screen())
	assert.Equal(t, dialogue.Hidden, m.flow.State())
}

func TestShopConsole_TracesStateChanges(t *testing.T) {
	var buf strings.Builder
	ledger, err := shop.NewLedger(1000, 20, catalog.Randi)
	require.NoError(t, err)
	roster, err := party.NewRoster(party.DefaultSpecs())
	require.NoError(t, err)

	var results []shop.Result
	m, err := NewShopConsole(consoleDeps{
		Items:     testCatalog(catalog.KindItems, 8),
		Equipment: testCatalog(catalog.KindEquipment, 3),
		Ledger:    ledger,
		Roster:    roster,
		Observer: shop.ObserverFuncs{
			TransactionResult: func(r shop.Result) { results = append(results, r) },
		},
		Logger:    slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Layout:    defaultShopLayout(),
		Clipboard: func(string) error { return nil },
	})
	require.NoError(t, err)

	m = walkToMerchant(t, m)
	m, _ = press(t, m, runeKey('l'), runeKey('l'), runeKey('k'))
	require.NotNil(t, m.session)

	var traced int
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Shop state changed") {
			traced++
			assert.Contains(t, line, "session_id="+m.session.ID.String())
		}
	}
	assert.Positive(t, traced)
	require.Len(t, results, 1, "configured observer still receives results")
	assert.True(t, results[0].OK())
}

func TestShopConsole_SellModeAndParty(t *testing.T) {
	m, _ := newTestConsole(t)
	m = walkToMerchant(t, m)
	m, _ = press(t, m, runeKey('l'), runeKey('s'), runeKey('l'))
	require.Equal(t, screenShop, m.screen())
	assert.Equal(t, shop.Sell, m.session.Mode())

	m, _ = press(t, m, runeKey('k'))
	assert.Contains(t, m.lastMessage, "don't have")

	m, _ = press(t, m, runeKey('b'), runeKey('p'), tea.KeyMsg{Type: tea.KeyTab}, runeKey('k'))
	assert.Equal(t, catalog.Purim, m.ledger.Player())
	assert.Equal(t, 0, m.ledger.Owned("equipment_0"), "purim cannot use randi's equipment")
	assert.True(t, strings.Contains(m.View(), "Shopper: Purim"))
}

func TestShopConsole_CopyFailure(t *testing.T) {
	m, _ := newTestConsole(t)
	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = walkToMerchant(t, m)
	m, _ = press(t, m, runeKey('l'), runeKey('l'), runeKey('y'))
	assert.Empty(t, m.history, "nothing to copy yet")

	m, _ = press(t, m, runeKey('k'), runeKey('y'))
	assert.Contains(t, m.history[len(m.history)-1], "Could not copy")
}

func TestShopConsole_Quit(t *testing.T) {
	m, _ := newTestConsole(t)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
