package configloader

import (
	"fmt"
	"os"

	"wallet_view/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

const defaultPriceFeedURL = "https://interview.switcheo.com/prices.json"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PriceFeedConfig holds configuration for the upstream price feed and its cache.
type PriceFeedConfig struct {
	URL                  string             `yaml:"url"`
	Disabled             bool               `yaml:"disabled"`
	RequestTimeoutMillis int64              `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int                `yaml:"cacheTTLMinutes"`
	RateLimitPerSecond   float64            `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int                `yaml:"rateLimitBurst"`
	StaticPrices         map[string]float64 `yaml:"staticPrices"`
}

// BalancesConfig points to the balance snapshot file.
type BalancesConfig struct {
	File string `yaml:"file"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"specFile"`
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Logging    LoggingConfig   `yaml:"logging"`
	PriceFeed  PriceFeedConfig `yaml:"priceFeed"`
	Balances   BalancesConfig  `yaml:"balances"`
	Priorities map[string]int  `yaml:"priorities"`
	Swagger    SwaggerConfig   `yaml:"swagger"`
	CORS       CORSConfig      `yaml:"cors"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML configuration, fills defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	switch {
	case cfg.PriceFeed.Disabled:
		cfg.PriceFeed.URL = ""
	case cfg.PriceFeed.URL == "":
		cfg.PriceFeed.URL = defaultPriceFeedURL
	}
	if cfg.PriceFeed.RequestTimeoutMillis <= 0 {
		cfg.PriceFeed.RequestTimeoutMillis = 10000
	}
	if cfg.PriceFeed.CacheTTLMinutes <= 0 {
		cfg.PriceFeed.CacheTTLMinutes = 5
	}
	if cfg.PriceFeed.RateLimitPerSecond <= 0 {
		cfg.PriceFeed.RateLimitPerSecond = 1
	}
	if cfg.PriceFeed.RateLimitBurst <= 0 {
		cfg.PriceFeed.RateLimitBurst = 1
	}

	if cfg.Balances.File == "" {
		cfg.Balances.File = "data/balances.json"
	}

	// No overrides means the built-in ranking.
	if len(cfg.Priorities) == 0 {
		cfg.Priorities = make(map[string]int, len(entity.DefaultBlockchainPriorities))
		for blockchain, priority := range entity.DefaultBlockchainPriorities {
			cfg.Priorities[blockchain] = priority
		}
	}

	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "docs/swagger.yaml"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
}

func (c *Config) validate() error {
	for blockchain, priority := range c.Priorities {
		if blockchain == "" {
			return fmt.Errorf("priorities: empty blockchain name")
		}
		// A configured blockchain at or below the sentinel could never be displayed.
		if priority <= entity.ExcludeSentinel {
			return fmt.Errorf("priorities: %s has priority %d, must be greater than %d", blockchain, priority, entity.ExcludeSentinel)
		}
	}
	for currency, price := range c.PriceFeed.StaticPrices {
		if price < 0 {
			return fmt.Errorf("priceFeed.staticPrices: %s has negative price %v", currency, price)
		}
	}
	return nil
}

// PriorityPolicy builds the immutable policy from the configured priorities.
func (c *Config) PriorityPolicy() entity.PriorityPolicy {
	return entity.NewPriorityPolicy(c.Priorities)
}
