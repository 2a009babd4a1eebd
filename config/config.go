package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
// This is the single source of truth for all configuration options
type Config struct {
	Port            string // HTTP server port
	ExplorerBaseURL string // Chain explorer API base (".../api/v2")
	DexBaseURL      string // DEX aggregator API base
	ChainID         string // Chain slug used by the DEX aggregator
	DefaultToken    string // Optional: token address selected at startup
	LogLevel        string // zerolog level: debug|info|warn|error

	HTTPTimeout    time.Duration // Timeout for each upstream call
	SnippetLimit   int           // Character budget for request/response snippets
	HolderPageSize int           // Page size for holder list walks
	HolderMaxPages int           // Page bound for holder list walks
	XferPageSize   int           // Page size for transfer walks
	XferMaxPages   int           // Page bound for time-windowed transfer walks
	WalletMaxPages int           // Page bound for full-history wallet walks
	FanOutLimit    int           // Max concurrent sub-calls in fan-out stats
}

// New creates a Config with the built-in defaults applied.
func New() *Config {
	return &Config{
		Port:            "8080",
		ExplorerBaseURL: "https://eth.blockscout.com/api/v2",
		DexBaseURL:      "https://api.dexscreener.com",
		ChainID:         "ethereum",
		LogLevel:        "info",

		HTTPTimeout:    30 * time.Second,
		SnippetLimit:   400,
		HolderPageSize: 50,
		HolderMaxPages: 4,
		XferPageSize:   50,
		XferMaxPages:   10,
		WalletMaxPages: 6,
		FanOutLimit:    8,
	}
}

// Load reads .env if present, then applies environment overrides on top
// of the defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := New()
	cfg.Port = getenvStr("PORT", cfg.Port)
	cfg.ExplorerBaseURL = strings.TrimRight(getenvStr("EXPLORER_BASE_URL", cfg.ExplorerBaseURL), "/")
	cfg.DexBaseURL = strings.TrimRight(getenvStr("DEX_BASE_URL", cfg.DexBaseURL), "/")
	cfg.ChainID = getenvStr("CHAIN_ID", cfg.ChainID)
	cfg.DefaultToken = getenvStr("DEFAULT_TOKEN", cfg.DefaultToken)
	cfg.LogLevel = strings.ToLower(getenvStr("LOG_LEVEL", cfg.LogLevel))

	cfg.HTTPTimeout = getenvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.SnippetLimit = getenvInt("SNIPPET_LIMIT", cfg.SnippetLimit)
	cfg.HolderPageSize = getenvInt("HOLDER_PAGE_SIZE", cfg.HolderPageSize)
	cfg.HolderMaxPages = getenvInt("HOLDER_MAX_PAGES", cfg.HolderMaxPages)
	cfg.XferPageSize = getenvInt("TRANSFER_PAGE_SIZE", cfg.XferPageSize)
	cfg.XferMaxPages = getenvInt("TRANSFER_MAX_PAGES", cfg.XferMaxPages)
	cfg.WalletMaxPages = getenvInt("WALLET_MAX_PAGES", cfg.WalletMaxPages)
	cfg.FanOutLimit = getenvInt("FANOUT_LIMIT", cfg.FanOutLimit)
	return cfg
}

func getenvStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
