package config

import (
	"os"
	"strings"
	"time"
)

type APIConfig struct {
	Addr        string
	DatabaseURL string
	DataFile    string
}

type CLIConfig struct {
	APIBaseURL    string
	PriceTick     time.Duration
	DecayTick     time.Duration
	AutosaveEvery time.Duration
}

func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("COOKIE_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:        addr,
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DataFile:    envDefault("COOKIE_DATA_FILE", "playerdata.json"),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL:    strings.TrimRight(envDefault("CKX_API_BASE_URL", "http://localhost:8080"), "/"),
		PriceTick:     envDurationDefault("CKX_PRICE_TICK_EVERY", 1500*time.Millisecond),
		DecayTick:     envDurationDefault("CKX_DECAY_TICK_EVERY", time.Second),
		AutosaveEvery: envDurationDefault("CKX_AUTOSAVE_EVERY", 10*time.Second),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
