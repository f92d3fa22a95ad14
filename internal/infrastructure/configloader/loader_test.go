package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wallet_view/internal/domain/entity"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.PriceFeed.URL != defaultPriceFeedURL {
		t.Fatalf("expected default feed url, got %s", cfg.PriceFeed.URL)
	}
	if cfg.PriceFeed.CacheTTLMinutes != 5 {
		t.Fatalf("expected default cache ttl 5, got %d", cfg.PriceFeed.CacheTTLMinutes)
	}
	if cfg.Balances.File != "data/balances.json" {
		t.Fatalf("expected default balances file, got %s", cfg.Balances.File)
	}
	policy := cfg.PriorityPolicy()
	if policy.Priority("Osmosis") != 100 || policy.Priority("Neo") != 20 {
		t.Fatalf("expected default priorities, got %+v", policy.Entries())
	}
	if policy.Priority("Unknown") != entity.ExcludeSentinel {
		t.Fatalf("expected unknown blockchain to resolve to sentinel")
	}
}

func TestParseOverrides(t *testing.T) {
	raw := `
server:
  port: "9090"
logging:
  level: debug
priceFeed:
  disabled: true
  staticPrices:
    USD: 1
    ETH: 2000.5
priorities:
  Osmosis: 1
  Solana: 70
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.PriceFeed.URL != "" {
		t.Fatalf("expected no feed url when disabled, got %s", cfg.PriceFeed.URL)
	}
	if cfg.PriceFeed.StaticPrices["ETH"] != 2000.5 {
		t.Fatalf("expected static ETH price, got %v", cfg.PriceFeed.StaticPrices["ETH"])
	}
	policy := cfg.PriorityPolicy()
	if policy.Priority("Solana") != 70 || policy.Priority("Osmosis") != 1 {
		t.Fatalf("unexpected policy %+v", policy.Entries())
	}
	if policy.Includes("Ethereum") {
		t.Fatalf("overrides replace the default table, Ethereum should be excluded")
	}
}

func TestParseRejectsPriorityAtSentinel(t *testing.T) {
	_, err := Parse([]byte("priorities:\n  Ethereum: -99\n"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Ethereum") {
		t.Fatalf("expected error to name the blockchain, got %v", err)
	}
}

func TestParseRejectsNegativeStaticPrice(t *testing.T) {
	if _, err := Parse([]byte("priceFeed:\n  staticPrices:\n    USD: -1\n")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("balances:\n  file: /tmp/b.json\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Balances.File != "/tmp/b.json" {
		t.Fatalf("expected balances file override, got %s", cfg.Balances.File)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected error")
	}
}
