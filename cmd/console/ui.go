package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/shop-engine/internal/logger"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/dialogue"
	"github.com/jwebster45206/shop-engine/pkg/movement"
	"github.com/jwebster45206/shop-engine/pkg/party"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// stepSeconds is how much walking time one key press is worth.
	stepSeconds = 0.1
	logLines    = 6
)

var merchantPos = movement.Vec2{X: 0, Y: -0.45}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	merchantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	merchantHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")) // dark grey

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

// consoleDeps is everything the console needs, assembled in main.
type consoleDeps struct {
	Items     *catalog.Catalog
	Equipment *catalog.Catalog
	Ledger    *shop.Ledger
	Roster    *party.Roster
	Observer  shop.Observer
	Logger    *slog.Logger
	Layout    shopLayout
	Clipboard func(string) error
}

type hideFarewellMsg struct{}

// ShopConsole is the BubbleTea model for the merchant scene.
type ShopConsole struct {
	items     *catalog.Catalog
	equipment *catalog.Catalog
	ledger    *shop.Ledger
	roster    *party.Roster
	observer  shop.Observer
	logger    *slog.Logger
	copyText  func(string) error

	keys    keyMap
	help    help.Model
	view    *shopView
	log     viewport.Model
	history []string

	lane    movement.Lane
	player  *movement.Player
	flow    *dialogue.Flow
	session *shop.Session

	lastMessage string
	width       int
	height      int
}

// stateTrace logs every shop state change at debug level.
func stateTrace(log *slog.Logger) shop.Observer {
	return shop.ObserverFuncs{
		StateChanged: func(snap shop.Snapshot) {
			logger.WithSessionID(log, snap.SessionID.String()).Debug("Shop state changed",
				"tab", snap.Tab,
				"mode", snap.Mode,
				"selected", snap.SelectedIndex,
				"quantity", snap.Quantity,
				"money", snap.Money,
				"closed", snap.Closed)
		},
	}
}

func NewShopConsole(deps consoleDeps) (ShopConsole, error) {
	if deps.Items == nil || deps.Equipment == nil {
		return ShopConsole{}, errors.New("both catalogs are required")
	}
	if deps.Ledger == nil || deps.Roster == nil {
		return ShopConsole{}, errors.New("ledger and roster are required")
	}
	view, err := newShopView(deps.Layout)
	if err != nil {
		return ShopConsole{}, fmt.Errorf("invalid shop layout: %w", err)
	}
	if deps.Observer == nil {
		deps.Observer = shop.NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}

	lane := movement.DefaultLane()
	deps.Ledger.SetPlayer(deps.Roster.Active().UserType())

	return ShopConsole{
		items:     deps.Items,
		equipment: deps.Equipment,
		ledger:    deps.Ledger,
		roster:    deps.Roster,
		observer:  shop.MultiObserver{stateTrace(deps.Logger), deps.Observer},
		logger:    deps.Logger,
		copyText:  deps.Clipboard,
		keys:      defaultKeyMap(),
		help:      help.New(),
		view:      view,
		log:       viewport.New(60, logLines),
		lane:      lane,
		player:    &movement.Player{Pos: movement.Vec2{X: 0, Y: lane.MinY}},
		flow:      dialogue.NewFlow(),
	}, nil
}

func (m ShopConsole) Init() tea.Cmd {
	return nil
}

// screen reports which part of the scene takes input.
func (m ShopConsole) screen() screen {
	switch m.flow.State() {
	case dialogue.Greeting:
		return screenDialogue
	case dialogue.Shopping:
		return screenShop
	case dialogue.Farewell:
		return screenFarewell
	}
	return screenLane
}

func (m ShopConsole) inRange() bool {
	return movement.InRange(m.player.Pos, merchantPos, movement.DefaultInteractionDistance)
}

func (m ShopConsole) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.log.Width = max(msg.Width-4, 20)
		m.writeLog()
		return m, nil

	case hideFarewellMsg:
		m.flow.Hide()
		return m, nil

	case tea.KeyMsg:
		act := m.keys.action(m.screen(), msg)
		if act == actionQuit {
			if m.session != nil {
				m.session.Cancel()
			}
			return m, tea.Quit
		}

		switch m.screen() {
		case screenLane:
			return m.updateLane(act)
		case screenDialogue:
			return m.updateDialogue(act)
		case screenShop:
			return m.updateShop(act)
		}
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

func (m ShopConsole) updateLane(act action) (tea.Model, tea.Cmd) {
	switch act {
	case actionMoveUp:
		m.lane.Step(m.player, 1, stepSeconds, m.flow.Active())
	case actionMoveDown:
		m.lane.Step(m.player, -1, stepSeconds, m.flow.Active())
	case actionTalk:
		if m.flow.Talk(m.inRange()) {
			m.logger.Debug("Merchant greeting opened")
		}
	}
	return m, nil
}

func (m ShopConsole) updateDialogue(act action) (tea.Model, tea.Cmd) {
	switch act {
	case actionChooseBuy:
		m.flow.Choose(shop.Buy)
	case actionChooseSell:
		m.flow.Choose(shop.Sell)
	case actionConfirmChoice:
		mode, ok := m.flow.Confirm()
		if !ok {
			return m, nil
		}
		s, err := shop.NewSession(shop.Config{
			Items:     m.items,
			Equipment: m.equipment,
			Ledger:    m.ledger,
			Observer:  m.observer,
			Logger:    m.logger,
			Mode:      mode,
		})
		if err != nil {
			m.logger.Error("Failed to open shop session", "error", err)
			m.pushMessage(errorStyle.Render("The merchant is closed: " + err.Error()))
			m.flow.LeaveShop()
			return m, m.scheduleHide()
		}
		m.session = s
	}
	return m, nil
}

func (m ShopConsole) updateShop(act action) (tea.Model, tea.Cmd) {
	s := m.session
	switch act {
	case actionNavigateUp:
		s.NavigateUp()
	case actionNavigateDown:
		s.NavigateDown()
	case actionDecrease:
		s.AdjustAmount(-1)
	case actionIncrease:
		s.AdjustAmount(1)
	case actionItemsTab:
		s.SwitchTab(shop.TabItems)
	case actionEquipmentTab:
		s.SwitchTab(shop.TabEquipment)
	case actionBuyMode:
		s.SetMode(shop.Buy)
	case actionSellMode:
		s.SetMode(shop.Sell)
	case actionNextMember:
		member := m.roster.Next()
		s.SetPlayer(member.UserType())
		m.pushMessage(promptStyle.Render("Now shopping as " + member.DisplayName()))
	case actionConfirm:
		res, err := s.Confirm()
		if errors.Is(err, shop.ErrSessionClosed) {
			return m, nil
		}
		m.lastMessage = res.Message
		if res.OK() {
			m.pushMessage(successStyle.Render(res.Message))
		} else {
			m.pushMessage(errorStyle.Render(res.Message))
		}
	case actionCopy:
		if m.lastMessage == "" {
			return m, nil
		}
		if err := m.copyText(m.lastMessage); err != nil {
			m.logger.Warn("Failed to copy to clipboard", "error", err)
			m.pushMessage(errorStyle.Render("Could not copy to clipboard"))
			return m, nil
		}
		m.pushMessage(promptStyle.Render("Copied to clipboard"))
	case actionLeave:
		s.Cancel()
		m.session = nil
		m.flow.LeaveShop()
		return m, m.scheduleHide()
	}
	return m, nil
}

// scheduleHide starts the farewell timer unless one is already running.
func (m ShopConsole) scheduleHide() tea.Cmd {
	if !m.flow.ScheduleHide() {
		return nil
	}
	return tea.Tick(dialogue.HideDelay, func(time.Time) tea.Msg {
		return hideFarewellMsg{}
	})
}

func (m *ShopConsole) pushMessage(line string) {
	m.history = append(m.history, line)
	if len(m.history) > 100 {
		m.history = m.history[len(m.history)-100:]
	}
	m.writeLog()
}

func (m *ShopConsole) writeLog() {
	width := max(m.log.Width-2, 10)
	lines := make([]string, len(m.history))
	for i, line := range m.history {
		lines[i] = wordwrap.String(line, width)
	}
	m.log.SetContent(strings.Join(lines, "\n"))
	m.log.GotoBottom()
}

func (m ShopConsole) renderDialogue() string {
	var content strings.Builder
	content.WriteString(merchantStyle.Render("Merchant") + "\n")
	content.WriteString(wordwrap.String(m.flow.Text(), 44))

	if m.flow.State() == dialogue.Greeting {
		content.WriteString("\n\n")
		for _, mode := range []shop.Mode{shop.Buy, shop.Sell} {
			label := m.view.Label(mode.String())
			if mode == m.flow.Choice() {
				content.WriteString(modalSelectedItemStyle.Render("▶ "+label) + "\n")
			} else {
				content.WriteString("  " + label + "\n")
			}
		}
	}
	return modalStyle.Width(50).Render(content.String())
}

func (m ShopConsole) View() string {
	var body string
	switch m.screen() {
	case screenShop:
		body = m.view.Render(m.session.Snapshot(), m.roster.Active().DisplayName())
	case screenDialogue, screenFarewell:
		body = lipgloss.JoinVertical(lipgloss.Left,
			renderLane(m.lane, *m.player, false),
			m.renderDialogue(),
		)
	default:
		body = renderLane(m.lane, *m.player, m.inRange())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("SHOP ENGINE"),
		"",
		body,
		m.log.View(),
		m.help.View(m.keys.helpFor(m.screen())),
	)
}
