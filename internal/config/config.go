package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Balance holds the live-tunable combat balance values.
type Balance struct {
	CriticalHitsEnabled bool    `yaml:"critical_hits_enabled"`
	BaseCriticalChance  float64 `yaml:"base_critical_chance"`
	CriticalHitModifier float64 `yaml:"critical_hit_modifier"`
}

// DefaultBalance returns the stock balance values.
func DefaultBalance() Balance {
	return Balance{
		CriticalHitsEnabled: true,
		BaseCriticalChance:  0.05,
		CriticalHitModifier: 1.5,
	}
}

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Combat balance
	Balance Balance `yaml:"balance"`

	// Deck rules
	HandSize int `yaml:"hand_size"`
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress: "0.0.0.0",
		Port:        8080,
		LogLevel:    "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "cardduel",
			Password: "cardduel",
			DBName:   "cardduel",
			SSLMode:  "disable",
		},
		Balance:  DefaultBalance(),
		HandSize: 10,
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
