package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/shop-engine/internal/config"
	"github.com/jwebster45206/shop-engine/internal/logger"
	"github.com/jwebster45206/shop-engine/internal/services/events"
	"github.com/jwebster45206/shop-engine/internal/storage"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/party"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	pkgstorage "github.com/jwebster45206/shop-engine/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logger.SetupFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	err = run(cfg, log)
	if err != nil {
		log.Error("Console exited with error", "error", err)
	}
	_ = logFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()
	store := storage.NewFileStorage(cfg.DataDir, log)
	defer func() {
		_ = store.Close()
	}()

	if err := store.Ping(ctx); err != nil {
		return err
	}

	deps, err := loadDeps(ctx, cfg, store, log)
	if err != nil {
		return err
	}

	if cfg.RedisURL != "" {
		rdb, err := events.NewClient(cfg.RedisURL, log)
		if err != nil {
			return err
		}
		defer func() {
			_ = rdb.Close()
		}()
		observer := events.NewObserver(
			events.NewBroadcaster(rdb, log),
			events.NewJournal(rdb, events.DefaultJournalLimit),
			log,
			events.DefaultPublishTimeout,
		)
		defer observer.Close()
		deps.Observer = observer
	}

	ui, err := NewShopConsole(deps)
	if err != nil {
		return err
	}

	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	log.Info("Console closed", "money", deps.Ledger.Money(), "used_space", deps.Ledger.UsedSpace())
	return nil
}

// loadDeps reads both catalogs and the party. Missing catalogs are fatal; a
// missing party falls back to the default roster.
func loadDeps(ctx context.Context, cfg *config.Config, store pkgstorage.Storage, log *slog.Logger) (consoleDeps, error) {
	items, err := store.GetCatalog(ctx, cfg.ItemsCatalog)
	if err != nil {
		return consoleDeps{}, fmt.Errorf("failed to load items catalog: %w", err)
	}
	equipment, err := store.GetCatalog(ctx, cfg.EquipmentCatalog)
	if err != nil {
		return consoleDeps{}, fmt.Errorf("failed to load equipment catalog: %w", err)
	}
	if items.Kind != catalog.KindItems || equipment.Kind != catalog.KindEquipment {
		return consoleDeps{}, fmt.Errorf("catalog kinds are %q and %q, want %q and %q",
			items.Kind, equipment.Kind, catalog.KindItems, catalog.KindEquipment)
	}

	specs, err := storage.LoadParty(ctx, store)
	if err != nil {
		return consoleDeps{}, err
	}
	if specs == nil {
		log.Info("No party members found, using default roster")
		specs = party.DefaultSpecs()
	}
	roster, err := party.NewRoster(specs)
	if err != nil {
		return consoleDeps{}, fmt.Errorf("failed to build party: %w", err)
	}
	if _, err := roster.Select(cfg.ActivePlayer); err != nil {
		return consoleDeps{}, fmt.Errorf("ACTIVE_PLAYER %s: %w", cfg.ActivePlayer, err)
	}

	ledger, err := shop.NewLedger(cfg.StartingMoney, cfg.InventorySpace, cfg.ActivePlayer)
	if err != nil {
		return consoleDeps{}, err
	}

	log.Info("Shop content loaded",
		"items", items.Len(),
		"equipment", equipment.Len(),
		"party", len(roster.Members()))

	return consoleDeps{
		Items:     items,
		Equipment: equipment,
		Ledger:    ledger,
		Roster:    roster,
		Logger:    log,
		Layout:    defaultShopLayout(),
	}, nil
}
