package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

type Config struct {
	Environment      string
	LogLevel         slog.Level
	LogFile          string
	DataDir          string
	RedisURL         string // empty disables event broadcasting
	StartingMoney    int
	InventorySpace   int
	ActivePlayer     catalog.UserType
	ItemsCatalog     string
	EquipmentCatalog string
}

func Load() (*Config, error) {
	money, err := getEnvInt("STARTING_MONEY", 10000)
	if err != nil {
		return nil, err
	}
	space, err := getEnvInt("INVENTORY_SPACE", 99)
	if err != nil {
		return nil, err
	}
	player, err := catalog.ParseUserType(getEnv("ACTIVE_PLAYER", "randi"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVE_PLAYER: %w", err)
	}

	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:          getEnv("LOG_FILE", "shop-console.log"),
		DataDir:          getEnv("DATA_DIR", "./data"),
		RedisURL:         os.Getenv("REDIS_URL"),
		StartingMoney:    money,
		InventorySpace:   space,
		ActivePlayer:     player,
		ItemsCatalog:     getEnv("ITEMS_CATALOG", "items.json"),
		EquipmentCatalog: getEnv("EQUIPMENT_CATALOG", "equipment.json"),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
