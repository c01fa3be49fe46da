package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/movement"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style names every shop layout must provide.
const (
	styleHeader     = "header"
	styleTab        = "tab"
	styleActiveTab  = "active_tab"
	styleRow        = "row"
	styleSelected   = "selected"
	styleRestricted = "restricted"
	styleStatus     = "status"
	styleDetail     = "detail"
)

var requiredStyles = []string{
	styleHeader, styleTab, styleActiveTab, styleRow,
	styleSelected, styleRestricted, styleStatus, styleDetail,
}

const minDetailWidth = 20

// shopLayout describes the shop screen before it is checked.
type shopLayout struct {
	Slots       int
	DetailWidth int
	Styles      map[string]lipgloss.Style
}

func defaultShopLayout() shopLayout {
	return shopLayout{
		Slots:       catalog.WindowSize,
		DetailWidth: 40,
		Styles: map[string]lipgloss.Style{
			styleHeader:     titleStyle,
			styleTab:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1),
			styleActiveTab:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")).Bold(true).Padding(0, 1),
			styleRow:        lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			styleSelected:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("86")).Bold(true),
			styleRestricted: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			styleStatus:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			styleDetail:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Italic(true),
		},
	}
}

// shopView renders snapshots. It is built once at startup and refuses a
// layout that cannot show a full window of entries.
type shopView struct {
	slots       int
	detailWidth int
	styles      map[string]lipgloss.Style
	title       cases.Caser
}

func newShopView(layout shopLayout) (*shopView, error) {
	if layout.Slots != catalog.WindowSize {
		return nil, fmt.Errorf("shop layout has %d entry slots, need %d", layout.Slots, catalog.WindowSize)
	}
	if layout.DetailWidth < minDetailWidth {
		return nil, fmt.Errorf("shop layout detail width %d is below %d", layout.DetailWidth, minDetailWidth)
	}
	var missing []string
	for _, name := range requiredStyles {
		if _, ok := layout.Styles[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("shop layout is missing styles: %s", strings.Join(missing, ", "))
	}

	return &shopView{
		slots:       layout.Slots,
		detailWidth: layout.DetailWidth,
		styles:      layout.Styles,
		title:       cases.Title(language.English),
	}, nil
}

func (v *shopView) style(name string) lipgloss.Style {
	return v.styles[name]
}

// Label title-cases an identifier such as a tab or character name.
func (v *shopView) Label(s string) string {
	return v.title.String(s)
}

func (v *shopView) Render(snap shop.Snapshot, shopper string) string {
	var b strings.Builder

	b.WriteString(v.style(styleHeader).Render("MERCHANT") + "  ")
	for _, tab := range []shop.Tab{shop.TabItems, shop.TabEquipment} {
		st := v.style(styleTab)
		if tab == snap.Tab {
			st = v.style(styleActiveTab)
		}
		b.WriteString(st.Render(v.Label(tab.String())))
	}
	b.WriteString("\n\n")

	for i := 0; i < v.slots; i++ {
		if i >= len(snap.Rows) {
			b.WriteString("\n")
			continue
		}
		b.WriteString(v.renderRow(snap, snap.Rows[i]) + "\n")
	}
	b.WriteString("\n")

	qty := fmt.Sprintf("%2d", snap.Quantity)
	if snap.QuantityLocked {
		qty = " -"
	}
	status := fmt.Sprintf("%s  x%s   Money: $%d   Space: %d/%d   Shopper: %s",
		strings.ToUpper(snap.Mode.String()), qty, snap.Money, snap.UsedSpace, snap.TotalSpace, shopper)
	b.WriteString(v.style(styleStatus).Render(status) + "\n")

	if snap.Description != "" {
		b.WriteString("\n" + v.style(styleDetail).Render(wordwrap.String(snap.Description, v.detailWidth)) + "\n")
	}

	return b.String()
}

func (v *shopView) renderRow(snap shop.Snapshot, row shop.Row) string {
	price := row.PriceLabel
	if snap.Mode == shop.Sell {
		price = fmt.Sprintf("$%d", row.SellPrice)
	}
	line := fmt.Sprintf(" %-20s %8s  stock %2d  own %2d ", row.Name, price, row.Stock, row.Owned)

	switch {
	case row.Selected:
		return v.style(styleSelected).Render("▶" + line)
	case !row.Purchasable:
		return v.style(styleRestricted).Render(" " + line)
	}
	return v.style(styleRow).Render(" " + line)
}

// laneRows is how many terminal lines the walking lane spans.
const laneRows = 8

// renderLane draws the lane top to bottom with the merchant above it.
func renderLane(lane movement.Lane, p movement.Player, inRange bool) string {
	var b strings.Builder
	merchant := "   $  Merchant"
	if inRange {
		merchant += merchantHintStyle.Render("  (press L to talk)")
	}
	b.WriteString(merchantStyle.Render(merchant) + "\n")

	span := lane.MaxY - lane.MinY
	row := 0
	if span > 0 {
		row = int((lane.MaxY - p.Pos.Y) / span * float64(laneRows-1))
	}
	marker := "v"
	if p.Facing == movement.FacingUp {
		marker = "^"
	}
	for i := 0; i < laneRows; i++ {
		if i == row {
			b.WriteString("  |" + playerStyle.Render(marker) + "|\n")
			continue
		}
		b.WriteString("  | |\n")
	}
	return b.String()
}
